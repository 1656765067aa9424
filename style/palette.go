// Package style provides a functional API for composing lipgloss styles.
package style

import "github.com/charmbracelet/lipgloss"

// Palette used by the catalog browser.
var (
	Base    = lipgloss.Color("#0f1014")
	Text    = lipgloss.Color("#e5e7eb")
	Subtext = lipgloss.Color("#9ca3af")
	Overlay = lipgloss.Color("#6b7280")

	Indigo = lipgloss.Color("#6366f1")
	Green  = lipgloss.Color("#4ade80")
	Yellow = lipgloss.Color("#facc15")
	Red    = lipgloss.Color("#ef4444")
	Peach  = lipgloss.Color("#fab387")

	AccentColor = Indigo
	ErrorColor  = Red
	FaintColor  = Overlay
)
