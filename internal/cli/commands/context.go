// Package commands implements the schemakit subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/schemakit/internal/cli/config"
	"github.com/leapstack-labs/schemakit/internal/cli/output"
	"github.com/leapstack-labs/schemakit/internal/repository"
)

// CommandContext carries the collaborators a command invocation needs.
type CommandContext struct {
	Config   *config.Config
	Repo     *repository.Repository
	Renderer *output.Renderer
	Logger   *slog.Logger
}

// NewCommandContext assembles config, repository, and renderer for one
// invocation. Falls back to loading config directly when the root
// PersistentPreRunE has not run (commands executed standalone in tests).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetCurrentConfig()
	if cfg == nil {
		var err error
		cfg, err = config.LoadConfig("", cmd.Root().PersistentFlags())
		if err != nil {
			return nil, err
		}
	}

	repo, err := repository.New(cfg.SchemasDir)
	if err != nil {
		return nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Config:   cfg,
		Repo:     repo,
		Renderer: r,
		Logger:   config.GetLogger(cmd.Context()),
	}, nil
}

// stdinIsTerminal reports whether the process is attached to an interactive
// terminal on both ends. The form only opens in that case.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
