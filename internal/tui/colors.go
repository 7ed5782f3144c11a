package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/landing/internal/theme"
)

// Styles are the lipgloss styles for one palette. They are rebuilt whenever
// the theme changes.
type Styles struct {
	Palette theme.Palette

	App         lipgloss.Style
	Brand       lipgloss.Style
	NavLink     lipgloss.Style
	ThemeBadge  lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Label       lipgloss.Style
	Field       lipgloss.Style
	FieldActive lipgloss.Style
	Button      lipgloss.Style
	ButtonFocus lipgloss.Style
	ButtonBusy  lipgloss.Style
	ToastOK     lipgloss.Style
	ToastErr    lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles builds the style set for t
func NewStyles(t theme.Theme) Styles {
	p := theme.PaletteFor(t)
	color := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(p.Border)).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color(p.Accent)).
		Padding(0, 4).
		MarginTop(1)

	toast := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 2)

	return Styles{
		Palette: p,

		App:         lipgloss.NewStyle().Foreground(color(p.PrimaryText)),
		Brand:       lipgloss.NewStyle().Foreground(color(p.Accent)).Bold(true),
		NavLink:     lipgloss.NewStyle().Foreground(color(p.PrimaryText)).MarginRight(3),
		ThemeBadge:  lipgloss.NewStyle().Foreground(color(p.PrimaryText)).Border(lipgloss.RoundedBorder()).BorderForeground(color(p.Border)).Padding(0, 1),
		Title:       lipgloss.NewStyle().Foreground(color(p.PrimaryText)).Bold(true),
		Description: lipgloss.NewStyle().Foreground(color(p.SecondaryText)),
		Label:       lipgloss.NewStyle().Foreground(color(p.PrimaryText)).Bold(true),
		Field:       field,
		FieldActive: field.BorderForeground(color(p.AccentBright)),
		Button:      button,
		ButtonFocus: button.Background(color(p.AccentBright)).Bold(true),
		ButtonBusy:  button.Background(color(p.MutedText)),
		ToastOK:     toast.Background(color(p.Success)),
		ToastErr:    toast.Background(color(p.Error)),
		Help:        lipgloss.NewStyle().Foreground(color(p.MutedText)).Italic(true),
	}
}
