// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/internal/ui"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/query"
	"github.com/seriesgenius/seriesgenius/share"
)

type snapshotMsg struct{}

type sharedMsg struct {
	method share.Method
	link   string
}

type answeredMsg struct {
	err error
}

// restore applies the selection carried by the last link, once.
func (b *statefulBubble) restore() {
	if b.options.Codec == nil {
		return
	}

	if selection, ok := b.options.Codec.Resolve(b.engine.Catalog()); ok {
		b.engine.Restore(selection.ContentID, selection.EpisodeID)
	}
	b.sync()
}

func (b *statefulBubble) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		<-b.snapshots
		return snapshotMsg{}
	}
}

// drain drops snapshots the bubble has already seen through engine calls.
func (b *statefulBubble) drain() {
	for {
		select {
		case <-b.snapshots:
		default:
			return
		}
	}
}

func (b *statefulBubble) openItem(item *catalog.Item) tea.Cmd {
	if err := b.engine.OpenContent(item.ID); err != nil {
		log.Error(err)
		return ui.Notify(err.Error())
	}

	b.sync()
	return nil
}

// play starts the selected episode, or the open item when it has none.
func (b *statefulBubble) play() tea.Cmd {
	var err error
	if episode, ok := b.selectedEpisode(); ok {
		err = b.engine.SelectEpisode(episode.ID)
	} else {
		err = b.engine.RequestPlay()
	}

	return b.after(err)
}

// retry plays the current target again after a failure.
func (b *statefulBubble) retry() tea.Cmd {
	return b.after(b.engine.RequestPlay())
}

func (b *statefulBubble) after(err error) tea.Cmd {
	b.sync()
	if err != nil {
		log.Warn(err)
		return ui.Notify(err.Error())
	}
	return nil
}

func (b *statefulBubble) selectedEpisode() (*catalog.Episode, bool) {
	item, ok := b.item()
	if !ok || !item.IsEpisodic() {
		return nil, false
	}

	selected, ok := b.episodesC.SelectedItem().(*listItem)
	if !ok {
		return nil, false
	}

	episode, ok := selected.internal.(*catalog.Episode)
	return episode, ok
}

func (b *statefulBubble) share() tea.Cmd {
	item, ok := b.item()
	if !ok || b.options.Sharer == nil {
		return nil
	}

	link := deeplink.ShareURL(b.options.ShareBase, b.snapshot.ContentID, b.snapshot.EpisodeID)
	request := share.NewRequest(item.Title, b.options.SiteName, link)
	sharer := b.options.Sharer

	return func() tea.Msg {
		return sharedMsg{
			method: sharer.Share(context.Background(), request),
			link:   link,
		}
	}
}

func (b *statefulBubble) shared(msg sharedMsg) tea.Cmd {
	switch msg.method {
	case share.MethodNative:
		return ui.Notify(icon.Get(icon.Share) + " Shared")
	case share.MethodClipboard:
		return ui.Notify(icon.Get(icon.Success) + " Link copied to clipboard")
	default:
		// nothing took it, leave the link on screen for manual copying
		return ui.Notify(fmt.Sprintf("%s Copy this link: %s", icon.Get(icon.Link), msg.link))
	}
}

func (b *statefulBubble) search(q string) {
	if q == "" {
		b.showRows()
		return
	}

	if err := query.Remember(q, 1); err != nil {
		log.Warn(err)
	}
	b.showSearch(q)
}

// ask opens the conversation about the open item, starting a new one when
// the item changed.
func (b *statefulBubble) ask() tea.Cmd {
	item, ok := b.item()
	if !ok {
		return nil
	}

	if b.conversation == nil || b.conversation.Item().ID != item.ID {
		b.conversation = insight.NewConversation(b.options.Assistant, item, b.options.SiteName)
	}

	b.askC.SetValue("")
	b.setState(askState)
	return tea.Batch(textinput.Blink, b.askC.Focus())
}

func (b *statefulBubble) send() tea.Cmd {
	question := b.askC.Value()
	conversation := b.conversation
	if conversation == nil || strings.TrimSpace(question) == "" {
		return nil
	}

	b.askC.SetValue("")
	return func() tea.Msg {
		_, err := conversation.Ask(context.Background(), question)
		return answeredMsg{err: err}
	}
}

func (b *statefulBubble) closeAsk() {
	b.askC.Blur()
	b.setState(detailState)
	b.sync()
}
