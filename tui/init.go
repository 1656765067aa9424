// Package tui provides the primary terminal user interface implementation.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Init starts listening for playback changes that arrive from the player.
func (b *statefulBubble) Init() tea.Cmd {
	return b.waitForSnapshot()
}
