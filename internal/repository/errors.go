package repository

import "fmt"

// ParseError reports a document whose content is not valid YAML. The
// underlying parser message is preserved.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateModelError reports a create that targets a name already present
// in the document.
type DuplicateModelError struct {
	Name     string
	Document string
}

func (e *DuplicateModelError) Error() string {
	return fmt.Sprintf("model %q already exists in %s", e.Name, e.Document)
}

// NotFoundError reports an update or delete that referenced a document with
// no models collection, or a name absent from it. Name is empty when the
// collection itself is missing.
type NotFoundError struct {
	Name     string
	Document string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no models found in %s", e.Document)
	}
	return fmt.Sprintf("model %q not found in %s", e.Name, e.Document)
}
