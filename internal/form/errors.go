package form

import (
	"errors"
	"fmt"
)

// ErrAborted is returned by Run when the user cancels the form.
var ErrAborted = errors.New("form aborted")

// PropsError reports custom-property input that failed to parse as YAML.
// It is surfaced to the caller instead of being silently dropped.
type PropsError struct {
	Err error
}

func (e *PropsError) Error() string {
	return fmt.Sprintf("custom properties: invalid YAML: %v", e.Err)
}

func (e *PropsError) Unwrap() error {
	return e.Err
}
