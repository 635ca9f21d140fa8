package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sopheara/klyr/internal/session"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	tag      lipgloss.Style
	help     lipgloss.Style
	label    lipgloss.Style
	modal    lipgloss.Style
}

// NewPalette builds a stylesheet from title, success, error, tag and muted colors.
func NewPalette(t, s, e, g, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		subtitle: NewStyle(h),
		ok:       NewBold(s),
		err:      NewBold(e),
		tag:      NewStyle(g).Padding(0, 1),
		help:     NewEm(h),
		label:    NewBold(h),
		modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(e)).Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Gold-on-dark for dark terminals, warmer tones for light ones; chosen to
// echo the web client's gold/orange look.
var (
	lightPalette = NewPalette("#B8860B", "#04B575", "#C42B1C", "#D97706", "#767676")
	darkPalette  = NewPalette("#FFD700", "#04B575", "#FF5F56", "#FFA500", "#A0A0A0")
)

// paletteFor selects the stylesheet for the active theme.
func paletteFor(theme session.Theme) *Palette {
	if theme == session.ThemeDark {
		return darkPalette
	}
	return lightPalette
}
