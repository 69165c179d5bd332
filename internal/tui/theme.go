package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to the colors the cockpit actually uses.
const (
	colorPink     = lipgloss.Color("#f5c2e7")
	colorLavender = lipgloss.Color("#b4befe")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorRed      = lipgloss.Color("#f38ba8")
	colorYellow   = lipgloss.Color("#f9e2af")
	colorTeal     = lipgloss.Color("#94e2d5")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext0 = lipgloss.Color("#a6adc8")
	colorSurface1 = lipgloss.Color("#45475a")
	colorOverlay0 = lipgloss.Color("#6c7086")
)

// Semantic aliases so views never name raw palette entries.
const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)
