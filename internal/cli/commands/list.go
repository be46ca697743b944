package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/cli/output"
	"github.com/leapstack-labs/schemakit/internal/repository"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all schema documents and their models",
		Long: `List every schema document in the schemas directory with its models.

Output adapts to environment:
  - Terminal: styled table
  - Piped/Scripted: markdown (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all models
  schemakit list

  # Machine-readable
  schemakit list --output json

  # Re-render whenever a document changes
  schemakit list --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the schemas directory and re-render on changes")

	return cmd
}

// modelInfo is one row of list output.
type modelInfo struct {
	Document     string   `json:"document"`
	Name         string   `json:"name"`
	Materialized string   `json:"materialized,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Columns      int      `json:"columns"`
	Refs         []string `json:"refs,omitempty"`
}

type listOutput struct {
	Documents int         `json:"documents"`
	Models    []modelInfo `json:"models"`
}

func runList(cmd *cobra.Command, watch bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if watch {
		return runListWatch(cmd, cmdCtx)
	}
	return renderList(cmdCtx)
}

func renderList(cmdCtx *CommandContext) error {
	docs, err := cmdCtx.Repo.ListDocuments()
	if err != nil {
		return err
	}

	out := listOutput{Documents: len(docs), Models: []modelInfo{}}
	for _, path := range docs {
		doc, err := cmdCtx.Repo.Load(path)
		if err != nil {
			return err
		}
		v, ok := doc.Get(repository.CollectionKey)
		if !ok {
			continue
		}
		seq, ok := v.([]any)
		if !ok {
			continue
		}
		for _, item := range seq {
			rec, ok := item.(*schema.Mapping)
			if !ok {
				continue
			}
			spec, err := schema.DecodeModel(rec)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			out.Models = append(out.Models, modelInfo{
				Document:     filepath.Base(path),
				Name:         spec.Name,
				Materialized: spec.Materialized,
				Tags:         spec.Tags,
				Columns:      len(spec.Columns),
				Refs:         spec.DependsOn.Refs,
			})
		}
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	r.Header(1, fmt.Sprintf("Models (%d total, %d documents)", len(out.Models), out.Documents))
	if len(out.Models) == 0 {
		r.Println("No models found. Add one with 'schemakit add <name>'.")
		return nil
	}

	rows := make([][]string, 0, len(out.Models))
	for _, m := range out.Models {
		rows = append(rows, []string{
			m.Document,
			m.Name,
			m.Materialized,
			strings.Join(m.Tags, ", "),
			fmt.Sprintf("%d", m.Columns),
			strings.Join(m.Refs, ", "),
		})
	}
	r.Table([]string{"Document", "Model", "Materialized", "Tags", "Columns", "Refs"}, rows)
	return nil
}

// runListWatch re-renders the listing whenever a document in the schemas
// directory changes. Events are debounced; editors tend to fire several per
// save.
func runListWatch(cmd *cobra.Command, cmdCtx *CommandContext) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmdCtx.Repo.Dir()); err != nil {
		return fmt.Errorf("watching %s: %w", cmdCtx.Repo.Dir(), err)
	}

	if err := renderList(cmdCtx); err != nil {
		return err
	}

	redraw := make(chan struct{}, 1)
	var debounce *time.Timer

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch filepath.Ext(ev.Name) {
			case ".yml", ".yaml":
			default:
				continue
			}
			cmdCtx.Logger.Debug("document changed", "path", ev.Name, "op", ev.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case redraw <- struct{}{}:
				default:
				}
			})
		case <-redraw:
			cmdCtx.Renderer.Println("")
			if err := renderList(cmdCtx); err != nil {
				cmdCtx.Renderer.Error(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "err", err)
		case <-cmd.Context().Done():
			return nil
		}
	}
}
