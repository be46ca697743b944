// Package form implements the interactive terminal form for collecting
// model fields. The form holds its own in-progress state per invocation
// (nothing process-global) and produces an ordered field mapping; it never
// touches files.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/schemakit/internal/schema"
)

// Field indices, in focus order.
const (
	fieldDescription = iota
	fieldMaterialized
	fieldTags
	fieldColumns
	fieldRefs
	fieldProps
	fieldCount
)

// materializations offered by the selector; the empty first entry leaves
// the field out of the record.
var materializations = append([]string{""}, schema.Materializations...)

// Options configures a form run.
type Options struct {
	Title   string
	Name    string          // model name, fixed by the CLI argument
	Initial *schema.Mapping // existing record fields, for edit prefill
}

// Model is the bubbletea model for the field form.
type Model struct {
	opts Options

	focus        int
	materialized int // index into materializations

	description textarea.Model
	tags        textinput.Model
	columns     textarea.Model
	refs        textarea.Model
	props       textarea.Model

	errMsg  string
	aborted bool
	done    bool
}

// New creates a form model, prefilled from opts.Initial when present.
func New(opts Options) Model {
	description := newArea("a detailed description of the model", 2)
	columns := newArea("one column per line: name : tests(;) : description", 4)
	refs := newArea("one upstream model per line", 3)
	props := newArea("free-form YAML merged into the record", 4)

	tags := textinput.New()
	tags.Placeholder = "comma-separated, e.g. finance, daily"

	m := Model{
		opts:        opts,
		description: description,
		tags:        tags,
		columns:     columns,
		refs:        refs,
		props:       props,
	}
	if opts.Initial != nil {
		m.prefill(opts.Initial)
	}
	m.setFocus(fieldDescription)
	return m
}

func newArea(placeholder string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetHeight(height)
	ta.ShowLineNumbers = false
	return ta
}

// prefill populates inputs from an existing record. Recognized fields map
// onto their inputs; everything else lands in the custom-properties area.
func (m *Model) prefill(initial *schema.Mapping) {
	leftover := schema.NewMapping()
	for _, key := range initial.Keys() {
		v, _ := initial.Get(key)
		switch key {
		case "name":
			// fixed by the CLI argument
		case "description":
			if s, ok := v.(string); ok {
				m.description.SetValue(s)
			}
		case "materialized":
			if s, ok := v.(string); ok {
				for i, known := range materializations {
					if known == s {
						m.materialized = i
						break
					}
				}
			}
		case "tags":
			if seq, ok := v.([]any); ok {
				var tags []string
				for _, t := range seq {
					tags = append(tags, fmt.Sprintf("%v", t))
				}
				m.tags.SetValue(strings.Join(tags, ", "))
			}
		case "columns":
			if seq, ok := v.([]any); ok {
				var lines []string
				for _, item := range seq {
					if col, ok := item.(*schema.Mapping); ok {
						lines = append(lines, FormatColumn(col))
					}
				}
				m.columns.SetValue(strings.Join(lines, "\n"))
			}
		case "depends_on":
			if dep, ok := v.(*schema.Mapping); ok {
				if refs, ok := dep.Get("refs"); ok {
					if seq, ok := refs.([]any); ok {
						var lines []string
						for _, ref := range seq {
							lines = append(lines, fmt.Sprintf("%v", ref))
						}
						m.refs.SetValue(strings.Join(lines, "\n"))
					}
				}
			}
		default:
			leftover.Set(key, v)
		}
	}
	if leftover.Len() > 0 {
		if data, err := schema.Encode(leftover); err == nil {
			m.props.SetValue(string(data))
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "ctrl+s":
			if _, err := m.Build(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "down":
			// Single-line fields; textareas keep up/down for the cursor.
			if m.focus == fieldMaterialized || m.focus == fieldTags {
				m.setFocus((m.focus + 1) % fieldCount)
				return m, nil
			}
		case "up":
			if m.focus == fieldMaterialized || m.focus == fieldTags {
				m.setFocus((m.focus + fieldCount - 1) % fieldCount)
				return m, nil
			}
		case "left", "right":
			if m.focus == fieldMaterialized {
				delta := 1
				if key.String() == "left" {
					delta = len(materializations) - 1
				}
				m.materialized = (m.materialized + delta) % len(materializations)
				return m, nil
			}
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldTags:
		m.tags, cmd = m.tags.Update(msg)
	case fieldColumns:
		m.columns, cmd = m.columns.Update(msg)
	case fieldRefs:
		m.refs, cmd = m.refs.Update(msg)
	case fieldProps:
		m.props, cmd = m.props.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	m.description.Blur()
	m.tags.Blur()
	m.columns.Blur()
	m.refs.Blur()
	m.props.Blur()
	switch focus {
	case fieldDescription:
		m.description.Focus()
	case fieldTags:
		m.tags.Focus()
	case fieldColumns:
		m.columns.Focus()
	case fieldRefs:
		m.refs.Focus()
	case fieldProps:
		m.props.Focus()
	}
}

var (
	titleStyle        = lipgloss.NewStyle().Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := m.opts.Title
	if title == "" {
		title = fmt.Sprintf("Model: %s", m.opts.Name)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	b.WriteString(m.label(fieldDescription, "Description") + "\n")
	b.WriteString(m.description.View() + "\n\n")

	b.WriteString(m.label(fieldMaterialized, "Materialized") + " ")
	choice := materializations[m.materialized]
	if choice == "" {
		choice = "(none)"
	}
	b.WriteString("◂ " + choice + " ▸\n\n")

	b.WriteString(m.label(fieldTags, "Tags") + "\n")
	b.WriteString(m.tags.View() + "\n\n")

	b.WriteString(m.label(fieldColumns, "Columns") + "\n")
	b.WriteString(m.columns.View() + "\n\n")

	b.WriteString(m.label(fieldRefs, "Depends on") + "\n")
	b.WriteString(m.refs.View() + "\n\n")

	b.WriteString(m.label(fieldProps, "Custom properties (YAML)") + "\n")
	b.WriteString(m.props.View() + "\n")

	if m.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab/shift+tab move · ◂ ▸ materialization · ctrl+s save · esc cancel") + "\n")
	return b.String()
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

// Build collects the form inputs into an ordered field mapping. Custom
// properties that fail to parse as YAML yield a *PropsError.
func (m Model) Build() (*schema.Mapping, error) {
	fields := schema.NewMapping()

	if d := strings.TrimSpace(m.description.Value()); d != "" {
		fields.Set("description", d)
	}
	if mat := materializations[m.materialized]; mat != "" {
		fields.Set("materialized", mat)
	}
	if tags := splitCSV(m.tags.Value()); len(tags) > 0 {
		fields.Set("tags", toAnySlice(tags))
	}
	cols, err := ParseColumns(m.columns.Value())
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		fields.Set("columns", cols)
	}
	if refs := splitLines(m.refs.Value()); len(refs) > 0 {
		dep := schema.NewMapping()
		dep.Set("refs", toAnySlice(refs))
		fields.Set("depends_on", dep)
	}
	if props := strings.TrimSpace(m.props.Value()); props != "" {
		pm, err := schema.Parse([]byte(props))
		if err != nil {
			return nil, &PropsError{Err: err}
		}
		for _, k := range pm.Keys() {
			v, _ := pm.Get(k)
			fields.Set(k, v)
		}
	}
	return fields, nil
}

// Run starts the interactive form and returns the collected fields, or
// ErrAborted when the user cancels.
func Run(opts Options) (*schema.Mapping, error) {
	final, err := tea.NewProgram(New(opts)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok || m.aborted {
		return nil, ErrAborted
	}
	return m.Build()
}
