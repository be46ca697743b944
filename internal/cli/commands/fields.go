package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemakit/internal/form"
	"github.com/leapstack-labs/schemakit/internal/schema"
)

// fieldOptions holds the non-interactive field flags shared by add and edit.
type fieldOptions struct {
	description  string
	materialized string
	tags         string
	columns      []string
	refs         []string
	props        string
	noInput      bool
}

// fieldFlagNames are the flags that, when set, skip the interactive form.
var fieldFlagNames = []string{"description", "materialized", "tags", "column", "ref", "props"}

// registerFieldFlags adds the shared model-field flags to a command.
func registerFieldFlags(cmd *cobra.Command, opts *fieldOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.description, "description", "", "Model description")
	f.StringVar(&opts.materialized, "materialized", "", "Materialization: table, view, incremental, ephemeral")
	f.StringVar(&opts.tags, "tags", "", "Comma-separated tags")
	f.StringArrayVar(&opts.columns, "column", nil, "Column as 'name:tests:description' (tests semicolon-separated, '->model.col' for relationships); repeatable")
	f.StringArrayVar(&opts.refs, "ref", nil, "Upstream model reference; repeatable")
	f.StringVar(&opts.props, "props", "", "Custom properties as inline YAML, merged into the record")
	f.BoolVar(&opts.noInput, "no-input", false, "Never open the interactive form")

	_ = cmd.RegisterFlagCompletionFunc("materialized", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return schema.Materializations, cobra.ShellCompDirectiveNoFileComp
	})
}

// collectFields produces the field mapping for add/edit: from the
// interactive form when attached to a terminal and no field flag was given,
// otherwise from the flags.
func collectFields(cmd *cobra.Command, opts *fieldOptions, initial *schema.Mapping, title, name string) (*schema.Mapping, error) {
	if useForm(cmd, opts) {
		return form.Run(form.Options{Title: title, Name: name, Initial: initial})
	}
	return buildFields(opts)
}

func useForm(cmd *cobra.Command, opts *fieldOptions) bool {
	if opts.noInput {
		return false
	}
	for _, name := range fieldFlagNames {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return false
		}
	}
	return stdinIsTerminal()
}

// buildFields assembles the field mapping from flags, in the document's
// conventional key order: description, materialized, tags, columns,
// depends_on, then custom properties.
func buildFields(opts *fieldOptions) (*schema.Mapping, error) {
	fields := schema.NewMapping()

	if opts.description != "" {
		fields.Set("description", opts.description)
	}
	if opts.materialized != "" {
		if !schema.IsKnownMaterialization(opts.materialized) {
			return nil, fmt.Errorf("unknown materialization %q, must be one of: %s",
				opts.materialized, strings.Join(schema.Materializations, ", "))
		}
		fields.Set("materialized", opts.materialized)
	}
	if tags := splitComma(opts.tags); len(tags) > 0 {
		fields.Set("tags", tags)
	}
	if len(opts.columns) > 0 {
		cols := make([]any, 0, len(opts.columns))
		for _, c := range opts.columns {
			col, err := form.ParseColumn(c)
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
		}
		fields.Set("columns", cols)
	}
	if len(opts.refs) > 0 {
		refs := make([]any, 0, len(opts.refs))
		for _, ref := range opts.refs {
			if ref = strings.TrimSpace(ref); ref != "" {
				refs = append(refs, ref)
			}
		}
		dep := schema.NewMapping()
		dep.Set("refs", refs)
		fields.Set("depends_on", dep)
	}
	if opts.props != "" {
		pm, err := schema.Parse([]byte(opts.props))
		if err != nil {
			return nil, &form.PropsError{Err: err}
		}
		for _, k := range pm.Keys() {
			v, _ := pm.Get(k)
			fields.Set(k, v)
		}
	}
	return fields, nil
}

func splitComma(s string) []any {
	var out []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// aborted reports whether the user cancelled the interactive form.
func aborted(err error) bool {
	return errors.Is(err, form.ErrAborted)
}
