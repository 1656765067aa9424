// Package tui provides the primary terminal user interface implementation.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/internal/ui"
	"github.com/seriesgenius/seriesgenius/query"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral notifications
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case snapshotMsg:
		// a change from the player itself, e.g. a stream failure
		b.drain()
		b.sync()
		return b, tea.Batch(cmd, b.waitForSnapshot())
	case sharedMsg:
		return b, b.shared(msg)
	case answeredMsg:
		if msg.err != nil {
			return b, tea.Batch(cmd, ui.Notify(msg.err.Error()))
		}
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var next tea.Cmd
	switch b.state {
	case catalogState:
		next = b.updateCatalog(msg)
	case searchState:
		next = b.updateSearch(msg)
	case detailState:
		next = b.updateDetail(msg)
	case playingState:
		next = b.updatePlaying(msg)
	case errorState:
		next = b.updateError(msg)
	case askState:
		next = b.updateAsk(msg)
	}

	b.drain()
	return b, tea.Batch(cmd, next)
}

func (b *statefulBubble) updateCatalog(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.search):
			b.inputC.SetValue(b.searchQuery)
			b.inputC.CursorEnd()
			b.newState(searchState)
			return tea.Batch(textinput.Blink, b.inputC.Focus())
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.searchQuery != "" {
				b.showRows()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			selected, ok := b.catalogC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			if item, ok := selected.internal.(*catalog.Item); ok {
				return b.openItem(item)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.catalogC, cmd = b.catalogC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				b.searchSuggestion = mo.None[string]()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			b.inputC.Blur()
			b.search(b.inputC.Value())
			b.previousState()
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())
	return cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.play):
			return b.play()
		case bubblesKey.Matches(msg, b.keymap.share):
			return b.share()
		case bubblesKey.Matches(msg, b.keymap.ask):
			return b.ask()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.engine.CloseContent()
			b.sync()
			return nil
		}
	}

	return b.updateEpisodes(msg)
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.play):
			return b.play()
		case bubblesKey.Matches(msg, b.keymap.share):
			return b.share()
		case bubblesKey.Matches(msg, b.keymap.ask):
			return b.ask()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.engine.ClosePlayer()
			b.sync()
			return nil
		}
	}

	return b.updateEpisodes(msg)
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.retry):
			return b.retry()
		case bubblesKey.Matches(msg, b.keymap.share):
			return b.share()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.engine.ClosePlayer()
			b.sync()
			return nil
		}
	}

	return nil
}

func (b *statefulBubble) updateAsk(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.closeAsk()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b.send()
		}
	}

	var cmd tea.Cmd
	b.askC, cmd = b.askC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg) tea.Cmd {
	item, ok := b.item()
	if !ok || !item.IsEpisodic() || b.episodesC.FilterState() == list.Filtering {
		return nil
	}

	var cmd tea.Cmd
	b.episodesC, cmd = b.episodesC.Update(msg)
	return cmd
}
