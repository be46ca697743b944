package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/repository"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	opts := &fieldOptions{}

	cmd := &cobra.Command{
		Use:     "edit <document> <name>",
		Aliases: []string{"update"},
		Short:   "Replace a model's fields in a schema document",
		Long: `Replace an existing model record.

The record is replaced whole, not merged: fields absent from the new input
are dropped. The interactive form opens prefilled with the current fields;
field flags replace the record non-interactively.`,
		Example: `  # Edit in the form, prefilled with current fields
  schemakit edit orders.yml orders

  # Replace non-interactively (tags and columns are dropped unless repeated)
  schemakit edit orders.yml orders --materialized view`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], args[1], opts)
		},
	}

	registerFieldFlags(cmd, opts)

	return cmd
}

func runEdit(cmd *cobra.Command, document, name string, opts *fieldOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	// Prefill needs the current record; also fail before opening the form
	// when the target does not exist.
	var initial *schema.Mapping
	if useForm(cmd, opts) {
		doc, err := cmdCtx.Repo.Load(cmdCtx.Repo.Resolve(document))
		if err != nil {
			return err
		}
		initial = findRecord(doc, name)
		if initial == nil {
			return &repository.NotFoundError{Name: name, Document: document}
		}
	}

	fields, err := collectFields(cmd, opts, initial, fmt.Sprintf("Edit model: %s", name), name)
	if err != nil {
		if aborted(err) {
			r.Println("Aborted.")
			return nil
		}
		return err
	}

	if err := cmdCtx.Repo.UpdateModel(document, name, fields); err != nil {
		return err
	}

	cmdCtx.Logger.Debug("model updated", "name", name, "document", document)
	r.Success(fmt.Sprintf("Model %q updated in %s", name, document))
	return nil
}

// findRecord returns the first record named name, or nil.
func findRecord(doc *schema.Mapping, name string) *schema.Mapping {
	v, ok := doc.Get(repository.CollectionKey)
	if !ok {
		return nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	for _, item := range seq {
		if schema.RecordName(item) == name {
			rec, _ := item.(*schema.Mapping)
			return rec
		}
	}
	return nil
}
