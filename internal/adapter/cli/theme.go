package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#64d2ff")
	ColorSuccess = lipgloss.Color("#30d158")
	ColorWarning = lipgloss.Color("#ffd60a")
	ColorError   = lipgloss.Color("#ff453a")
	ColorInfo    = lipgloss.Color("#0a84ff")
	ColorFun     = lipgloss.Color("#e91e63")
	ColorMuted   = lipgloss.Color("#808080")
)

// Theme holds the styles used by the renderer. Styles are bound to the
// output's renderer so piping to a file drops the colors.
type Theme struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Fun     lipgloss.Style
	Bold    lipgloss.Style

	rainbow []lipgloss.Style
}

// NewTheme builds a Theme for w.
func NewTheme(w io.Writer) *Theme {
	r := lipgloss.NewRenderer(w)
	t := &Theme{
		Title:   r.NewStyle().Foreground(ColorAccent).Bold(true),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError),
		Info:    r.NewStyle().Foreground(ColorInfo),
		Fun:     r.NewStyle().Foreground(ColorFun),
		Bold:    r.NewStyle().Bold(true),
	}
	t.rainbow = []lipgloss.Style{t.Title, t.Success, t.Warning, t.Fun, t.Info, t.Error}
	return t
}

// Energy picks green, yellow or red for an energy level on the 0-10 scale.
func (t *Theme) Energy(v float64) lipgloss.Style {
	switch {
	case v >= 8:
		return t.Success
	case v >= 5:
		return t.Warning
	default:
		return t.Error
	}
}
