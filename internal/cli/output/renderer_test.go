package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	tests := []struct {
		input string
		want  OutputMode
	}{
		{"text", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{"json", ModeJSON},
		{"JSON", ModeJSON},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mode(tt.input), "input %q", tt.input)
	}
}

func TestEffectiveModeAuto(t *testing.T) {
	var out, errOut bytes.Buffer

	tty := NewRendererWithTTY(&out, &errOut, true, ModeAuto)
	assert.Equal(t, ModeText, tty.EffectiveMode())

	piped := NewRendererWithTTY(&out, &errOut, false, ModeAuto)
	assert.Equal(t, ModeMarkdown, piped.EffectiveMode())

	forced := NewRendererWithTTY(&out, &errOut, false, ModeJSON)
	assert.Equal(t, ModeJSON, forced.EffectiveMode())
}

func TestMarkdownOutputHasNoANSI(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)

	r.Header(1, "Models")
	r.KeyValue("Document", "orders.yml")
	r.Success("done")
	r.Warn("careful")
	r.Error("broken")

	combined := out.String() + errOut.String()
	assert.NotContains(t, combined, "\x1b[")
	assert.Contains(t, out.String(), "# Models")
	assert.Contains(t, out.String(), "- **Document:** orders.yml")
	assert.Contains(t, errOut.String(), "Warning: careful")
	assert.Contains(t, errOut.String(), "Error: broken")
}

func TestTableModes(t *testing.T) {
	header := []string{"Document", "Model"}
	rows := [][]string{{"orders.yml", "orders"}}

	var md bytes.Buffer
	NewRendererWithTTY(&md, &bytes.Buffer{}, false, ModeMarkdown).Table(header, rows)
	assert.Contains(t, md.String(), "| Document | Model |")
	assert.Contains(t, md.String(), "| orders.yml | orders |")

	var text bytes.Buffer
	NewRendererWithTTY(&text, &bytes.Buffer{}, false, ModeText).Table(header, rows)
	assert.Contains(t, text.String(), "orders.yml")
	assert.NotContains(t, text.String(), "| orders.yml | orders |")
}

func TestYAMLFencedInMarkdown(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)
	r.YAML("models:\n  - name: orders\n")

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "```yaml\n"))
	assert.True(t, strings.HasSuffix(got, "```\n"))

	var plain bytes.Buffer
	NewRendererWithTTY(&plain, &bytes.Buffer{}, false, ModeText).YAML("models: []\n")
	assert.Equal(t, "models: []\n", plain.String())
}

func TestStatusLine(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)
	r.StatusLine("orders.yml", "success", "")
	r.StatusLine("broken.yml", "error", "bad yaml")

	assert.Contains(t, out.String(), "- orders.yml")
	assert.Contains(t, out.String(), "- broken.yml (bad yaml)")
}
