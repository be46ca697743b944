package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/cli/config"
	"github.com/leapstack-labs/schemakit/internal/cli/output"
)

const configTemplate = `# SchemaKit configuration
schemas_dir: schemas
output: auto
`

const exampleDocument = `models:
  - name: orders
    description: One row per order
    materialized: table
    tags:
      - finance
    columns:
      - name: order_id
        description: Primary key
        tests:
          - unique
          - not_null
      - name: customer_id
        tests:
          - not_null
          - relationships:
              to: customers
              field: customer_id
    depends_on:
      refs:
        - stg_orders
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new SchemaKit project",
		Long: `Initialize a new SchemaKit project with default directory structure and configuration.

This creates:
  - schemas/ directory for model schema documents
  - schemakit.yaml configuration file

Use --example to also write a sample document demonstrating the record
layout (columns, tests, refs).`,
		Example: `  # Initialize in current directory
  schemakit init

  # Initialize with a sample document
  schemakit init --example

  # Initialize in a new directory
  schemakit init my-project

  # Force overwrite existing config
  schemakit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return runInit(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Write a sample schema document")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
	}
	r.StatusLine(config.ConfigFileName, "success", "")

	schemasDir := filepath.Join(dir, config.DefaultSchemasDir)
	if err := os.MkdirAll(schemasDir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", schemasDir, err)
	}
	r.StatusLine(config.DefaultSchemasDir+"/", "success", "")

	if example {
		examplePath := filepath.Join(schemasDir, "orders.yml")
		if _, err := os.Stat(examplePath); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", examplePath)
		}
		if err := os.WriteFile(examplePath, []byte(exampleDocument), 0644); err != nil {
			return fmt.Errorf("failed to write example document: %w", err)
		}
		r.StatusLine(config.DefaultSchemasDir+"/orders.yml", "success", "")
	}

	r.Println("")
	r.Success("SchemaKit project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'schemakit add <name>' to create a model")
	r.Println("  2. Run 'schemakit list' to see all models")
	r.Println("  3. Run 'schemakit validate' to check documents")

	return nil
}
