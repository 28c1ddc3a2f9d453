package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bobmcallan/sentinel/internal/services/dashboard"
)

// Palette
var (
	colorRed    = lipgloss.Color("#ef4444")
	colorOrange = lipgloss.Color("#f97316")
	colorYellow = lipgloss.Color("#eab308")
	colorAmber  = lipgloss.Color("#f59e0b")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorGreen  = lipgloss.Color("#22c55e")
	colorGray   = lipgloss.Color("#9ca3af")
	colorMuted  = lipgloss.Color("#6b7280")
	colorBorder = lipgloss.Color("#374151")
)

var toneColors = map[dashboard.Tone]lipgloss.Color{
	dashboard.ToneRed:    colorRed,
	dashboard.ToneOrange: colorOrange,
	dashboard.ToneYellow: colorYellow,
	dashboard.ToneAmber:  colorAmber,
	dashboard.ToneBlue:   colorBlue,
	dashboard.ToneGreen:  colorGreen,
	dashboard.ToneGray:   colorGray,
	dashboard.ToneMuted:  colorMuted,
}

// Styles holds the rendering styles of the terminal dashboard
type Styles struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Heading     lipgloss.Style
	Warning     lipgloss.Style
	Muted       lipgloss.Style
	Card        lipgloss.Style
	Spinner     lipgloss.Style
}

// DefaultStyles returns the dashboard styles
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Foreground(colorMuted),
		Heading:     lipgloss.NewStyle().Bold(true).Underline(true),
		Warning: lipgloss.NewStyle().
			Foreground(colorAmber).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorAmber).
			PaddingLeft(1),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().Foreground(colorBlue),
	}
}

// toneStyle colours text by tone; unknown tones render gray.
func toneStyle(t dashboard.Tone) lipgloss.Style {
	c, ok := toneColors[t]
	if !ok {
		c = colorGray
	}
	return lipgloss.NewStyle().Foreground(c)
}

// badge renders a bracketed label in its tone
func badge(b dashboard.Badge) string {
	return toneStyle(b.Tone).Render("[" + b.Label + "]")
}
