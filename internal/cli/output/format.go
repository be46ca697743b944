package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatHeader renders a markdown header at the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a markdown key-value bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

type styleFn func(string) string

var (
	headerStyle  = render(lipgloss.NewStyle().Bold(true))
	labelStyle   = render(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")))
	successStyle = render(lipgloss.NewStyle().Foreground(lipgloss.Color("2")))
	warnStyle    = render(lipgloss.NewStyle().Foreground(lipgloss.Color("3")))
	errorStyle   = render(lipgloss.NewStyle().Foreground(lipgloss.Color("1")))
)

func render(s lipgloss.Style) styleFn {
	return func(text string) string { return s.Render(text) }
}
