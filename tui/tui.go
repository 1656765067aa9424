// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/playback"
	"github.com/seriesgenius/seriesgenius/share"
)

// Sharer hands a share request to the first facility that takes it.
type Sharer interface {
	Share(ctx context.Context, request share.Request) share.Method
}

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Engine *playback.Engine
	// Codec restores the selection of the last link at startup, optional.
	Codec     *deeplink.Codec
	Sharer    Sharer
	ShareBase string
	SiteName  string
	// Assistant answers questions about the open title, optional.
	Assistant insight.Assistant
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	bubble.restore()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
