// Package output provides mode-aware rendering for CLI commands.
//
// Output adapts to the environment: styled text on a terminal, markdown
// when piped (agent-friendly), JSON on request. Commands never print
// directly; they go through a Renderer.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how command output is rendered.
type OutputMode string

const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode normalizes a user-supplied format string into an OutputMode.
// Unrecognized values fall back to auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(s) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styled bool
}

// NewRenderer creates a renderer, detecting TTY state from the writer.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state. Used by
// tests to pin down mode detection.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	styled := false
	if isTTY {
		styled = termenv.NewOutput(out).ColorProfile() != termenv.Ascii
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY, styled: styled}
}

// EffectiveMode resolves auto: text on a TTY, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the underlying stdout writer, for JSON encoders.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the underlying stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.style(headerStyle, text))
		return
	}
	r.Println(FormatHeader(level, text))
}

// KeyValue writes a labeled value.
func (r *Renderer) KeyValue(key, value string) {
	if r.EffectiveMode() == ModeText {
		r.Println(fmt.Sprintf("  %s %s", r.style(labelStyle, key+":"), value))
		return
	}
	r.Println(FormatKeyValue(key, value))
}

// Success writes a success line to stdout.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.style(successStyle, "✓ ") + msg)
		return
	}
	r.Println(msg)
}

// Warn writes a warning line to stderr.
func (r *Renderer) Warn(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.style(warnStyle, "! ")+msg)
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Warning: "+msg)
}

// Error writes an error line to stderr.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.style(errorStyle, "✗ ")+msg)
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Error: "+msg)
}

// StatusLine writes a per-item status line (used by init and validate).
func (r *Renderer) StatusLine(name, status, note string) {
	marker := "-"
	if r.EffectiveMode() == ModeText {
		switch status {
		case "success":
			marker = r.style(successStyle, "✓")
		case "error":
			marker = r.style(errorStyle, "✗")
		case "warning":
			marker = r.style(warnStyle, "!")
		}
	}
	line := fmt.Sprintf("  %s %s", marker, name)
	if note != "" {
		line += " (" + note + ")"
	}
	r.Println(line)
}

// Table writes a table: box-drawing on a terminal, pipe table in markdown.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}
	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// YAML writes a YAML snippet, fenced in markdown mode.
func (r *Renderer) YAML(code string) {
	code = strings.TrimRight(code, "\n")
	if r.EffectiveMode() == ModeMarkdown {
		r.Println("```yaml")
		r.Println(code)
		r.Println("```")
		return
	}
	r.Println(code)
}

func (r *Renderer) style(s styleFn, text string) string {
	if !r.styled {
		return text
	}
	return s(text)
}
