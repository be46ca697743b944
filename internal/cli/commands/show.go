package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/cli/output"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <document>",
		Short: "Show a schema document",
		Long: `Show the contents of one schema document.

The document is round-tripped through the repository, so the output
reflects exactly what load and save operate on (key order preserved).`,
		Example: `  schemakit show orders.yml

  # Machine-readable
  schemakit show orders.yml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
	return cmd
}

func runShow(cmd *cobra.Command, document string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	path := cmdCtx.Repo.Resolve(document)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("document %s not found", document)
	}

	doc, err := cmdCtx.Repo.Load(path)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(doc.ToMap())
	}

	data, err := schema.Encode(doc)
	if err != nil {
		return err
	}
	r.Header(1, document)
	r.YAML(string(data))
	return nil
}
