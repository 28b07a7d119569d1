package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette colours.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
)

// styles renders command output. Colours are dropped automatically when
// the writer is not a terminal.
type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	return &styles{
		Title:   r.NewStyle().Bold(true).Foreground(colourPrimary),
		Label:   r.NewStyle().Bold(true).Width(10),
		Muted:   r.NewStyle().Foreground(colourMuted),
		Success: r.NewStyle().Foreground(colourSuccess),
		Warning: r.NewStyle().Foreground(colourWarning),
		Error:   r.NewStyle().Foreground(colourError),
	}
}

// field renders "label value", with a muted placeholder for empty values.
func (s *styles) field(label, value string) string {
	if value == "" {
		value = s.Muted.Render("(not found)")
	}
	return s.Label.Render(label+":") + " " + value
}
