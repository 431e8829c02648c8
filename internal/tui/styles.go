package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every view.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorBorder    = lipgloss.Color("62")
	ColorSpinner   = lipgloss.Color("205")
)

// Status icons.
const (
	IconOK      = "✓"
	IconWarning = "⚠"
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderStyle    = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle     = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle     = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	OKStyle        = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	CriticalStyle  = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)
)
