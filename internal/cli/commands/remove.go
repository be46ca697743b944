package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <document> <name>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a model from a schema document",
		Long: `Remove a model record by name.

When the last record of a document is removed, the document file itself is
deleted from disk rather than leaving a near-empty file behind.`,
		Example: `  schemakit remove orders.yml orders`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runRemove(cmd *cobra.Command, document, name string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if err := cmdCtx.Repo.DeleteModel(document, name); err != nil {
		return err
	}

	cmdCtx.Logger.Debug("model removed", "name", name, "document", document)
	path := cmdCtx.Repo.Resolve(document)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.Success(fmt.Sprintf("Model %q removed; %s deleted (no models left)", name, document))
		return nil
	}
	r.Success(fmt.Sprintf("Model %q removed from %s", name, document))
	return nil
}
