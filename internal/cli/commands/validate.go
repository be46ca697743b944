package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/cli/output"
	"github.com/leapstack-labs/schemakit/internal/repository"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [document ...]",
		Short: "Validate schema documents",
		Long: `Check that documents are valid model schemas: parseable YAML with a
models collection whose records each carry a name.

Unknown materialization values are reported as warnings, not failures.
With no arguments, every document in the schemas directory is checked.`,
		Example: `  # Validate everything
  schemakit validate

  # Validate specific documents
  schemakit validate orders.yml marts.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}
	return cmd
}

// validationResult is the per-document outcome.
type validationResult struct {
	Document string   `json:"document"`
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	paths := make([]string, 0, len(args))
	if len(args) > 0 {
		for _, a := range args {
			paths = append(paths, cmdCtx.Repo.Resolve(a))
		}
	} else {
		paths, err = cmdCtx.Repo.ListDocuments()
		if err != nil {
			return err
		}
	}

	results := make([]validationResult, 0, len(paths))
	invalid := 0
	for _, path := range paths {
		res := validateDocument(cmdCtx.Repo, path)
		if !res.Valid {
			invalid++
		}
		results = append(results, res)
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		r.Header(1, fmt.Sprintf("Validating %d documents", len(results)))
		for _, res := range results {
			if res.Valid {
				r.StatusLine(res.Document, "success", "")
			} else {
				r.StatusLine(res.Document, "error", res.Error)
			}
			for _, w := range res.Warnings {
				r.Warn(fmt.Sprintf("%s: %s", res.Document, w))
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d documents failed validation", invalid, len(results))
	}
	return nil
}

func validateDocument(repo *repository.Repository, path string) validationResult {
	res := validationResult{Document: filepath.Base(path)}

	doc, err := repo.Load(path)
	if err != nil {
		var parseErr *repository.ParseError
		if errors.As(err, &parseErr) {
			res.Error = parseErr.Err.Error()
		} else {
			res.Error = err.Error()
		}
		return res
	}

	if !repository.Validate(doc) {
		res.Error = "missing models collection, or a record without a name"
		return res
	}
	res.Valid = true

	// Lint-level check only; the repository never inspects materialization.
	if v, ok := doc.Get(repository.CollectionKey); ok {
		if seq, ok := v.([]any); ok {
			for _, item := range seq {
				rec, ok := item.(*schema.Mapping)
				if !ok {
					continue
				}
				spec, err := schema.DecodeModel(rec)
				if err != nil {
					res.Warnings = append(res.Warnings, err.Error())
					continue
				}
				if !schema.IsKnownMaterialization(spec.Materialized) {
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("model %q: unknown materialization %q", spec.Name, spec.Materialized))
				}
			}
		}
	}
	return res
}
