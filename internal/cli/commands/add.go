package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	opts := &fieldOptions{}
	var file string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new model to a schema document",
		Long: `Add a new model record to a schema document.

When run on a terminal without field flags, an interactive form collects
the model's fields. Field flags skip the form for scripted use.

The target document is --file when given, otherwise <name>.yml. The
document and its models collection are created as needed; adding a name
that already exists in the document is an error.`,
		Example: `  # Open the interactive form
  schemakit add orders

  # Non-interactive
  schemakit add orders --materialized table --tags finance \
    --column "order_id:unique;not_null:Primary key" \
    --ref stg_orders

  # Into a shared document
  schemakit add orders --file marts.yml --materialized table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], file, opts)
		},
	}

	registerFieldFlags(cmd, opts)
	cmd.Flags().StringVar(&file, "file", "", "Target document (default: <name>.yml)")

	return cmd
}

func runAdd(cmd *cobra.Command, name, file string, opts *fieldOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	fields, err := collectFields(cmd, opts, nil, fmt.Sprintf("Add model: %s", name), name)
	if err != nil {
		if aborted(err) {
			r.Println("Aborted.")
			return nil
		}
		return err
	}

	path, err := cmdCtx.Repo.CreateModel(name, fields, file)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Debug("model created", "name", name, "document", path)
	r.Success(fmt.Sprintf("Model %q added to %s", name, filepath.Base(path)))
	return nil
}
