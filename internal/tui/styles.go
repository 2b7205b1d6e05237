package tui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours one editor theme draws with.
type Palette struct {
	Surface lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
}

var (
	lightPalette = Palette{
		Surface: lipgloss.Color("#c5e8c1"),
		Accent:  lipgloss.Color("#a8d5ba"),
		Text:    lipgloss.Color("#1a3a2e"),
		Muted:   lipgloss.Color("#2d5a45"),
		Error:   lipgloss.Color("#b3261e"),
	}
	darkPalette = Palette{
		Surface: lipgloss.Color("#1a3a2e"),
		Accent:  lipgloss.Color("#2d5a45"),
		Text:    lipgloss.Color("#c5e8c1"),
		Muted:   lipgloss.Color("#a8d5ba"),
		Error:   lipgloss.Color("#f2b8b5"),
	}
)

// PaletteFor returns the palette of the light or dark editor theme.
func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// Styles maps a Palette to lipgloss styles for TUI rendering.
type Styles struct {
	Pane       lipgloss.Style
	PaneTitle  lipgloss.Style
	StatusBar  lipgloss.Style
	StatusItem lipgloss.Style
	Busy       lipgloss.Style
	ErrorBar   lipgloss.Style
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
}

// NewStyles creates Styles for the light or dark editor theme.
func NewStyles(dark bool) Styles {
	p := PaletteFor(dark)
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		PaneTitle:  lipgloss.NewStyle().Foreground(p.Muted).Bold(true).PaddingLeft(1),
		StatusBar:  lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text),
		StatusItem: lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text).Padding(0, 1),
		Busy:       lipgloss.NewStyle().Background(p.Accent).Foreground(p.Text).Bold(true).Padding(0, 1),
		ErrorBar:   lipgloss.NewStyle().Foreground(p.Error).Bold(true).PaddingLeft(1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(p.Muted).Bold(true).MarginBottom(1),
	}
}
