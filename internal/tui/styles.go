package tui

import "github.com/charmbracelet/lipgloss"

// Color palette. ANSI 256 codes keep rendering sane on basic terminals.
var (
	ColorHeader    = lipgloss.Color("35")  // green
	ColorLabel     = lipgloss.Color("245") // grey
	ColorValue     = lipgloss.Color("252") // near-white
	ColorHighlight = lipgloss.Color("42")  // bright green
	ColorError     = lipgloss.Color("196") // red
	ColorMuted     = lipgloss.Color("240") // dark grey
	ColorBorder    = lipgloss.Color("35")
)

// Shared styles for form and result rendering.
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	BigStyle    = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	AckStyle    = lipgloss.NewStyle().Foreground(ColorHighlight).Italic(true)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)
)
