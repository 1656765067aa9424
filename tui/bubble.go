// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/internal/ui"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/playback"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/seriesgenius/seriesgenius/util"
	"github.com/spf13/viper"
)

// statefulBubble holds the shell state. Playback state lives in the engine,
// the bubble mirrors it after every change.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	inputC    textinput.Model
	askC      textinput.Model
	catalogC  list.Model
	episodesC list.Model
	helpC     help.Model

	engine      *playback.Engine
	snapshot    playback.Snapshot
	snapshots   chan playback.Snapshot
	unsubscribe func()

	searchQuery      string
	searchSuggestion mo.Option[string]

	conversation *insight.Conversation

	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state for searches.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if s == searchState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	b.setState(b.statesHistory.Pop().OrElse(catalogState))
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.catalogC.SetSize(listWidth, listHeight)
	b.catalogC.Help.Width = listWidth

	// episodes share the screen with the preview
	b.episodesC.SetSize(listWidth, util.Max(listHeight/2, 5))
	b.episodesC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		engine:        options.Engine,
		snapshots:     make(chan playback.Snapshot, 32),
		notifier:      &ui.Model{},
		options:       options,
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Title or genre"
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = "> "

	bubble.askC = textinput.New()
	bubble.askC.Placeholder = "Ask about this title..."
	bubble.askC.CharLimit = 200
	bubble.askC.Prompt = "> "

	bubble.catalogC = makeList(options.SiteName, true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.catalogC.SetStatusBarItemName("title", "titles")

	bubble.episodesC = makeList("Episodes", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.episodesC.SetStatusBarItemName("episode", "episodes")

	bubble.showRows()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.unsubscribe = bubble.engine.Subscribe(func(s playback.Snapshot) {
		select {
		case bubble.snapshots <- s:
		default:
			// the bubble re-reads the engine, a dropped snapshot is not lost state
		}
	})

	bubble.sync()
	return &bubble
}

func (b *statefulBubble) close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

// showRows fills the catalog list with every shelf, each item once under
// the first shelf it appears on.
func (b *statefulBubble) showRows() {
	var items []list.Item
	seen := make(map[string]struct{})

	for _, row := range b.engine.Catalog().Rows() {
		for _, item := range row.Items {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			items = append(items, &listItem{internal: item, row: row.Title})
		}
	}

	b.searchQuery = ""
	b.catalogC.Title = b.options.SiteName
	b.catalogC.SetItems(items)
	b.catalogC.ResetSelected()
}

// showSearch fills the catalog list with the search results for query.
func (b *statefulBubble) showSearch(query string) {
	row := b.engine.Catalog().SearchRow(query)

	b.searchQuery = query
	b.catalogC.Title = row.Title
	b.catalogC.SetItems(lo.Map(row.Items, func(item *catalog.Item, _ int) list.Item {
		return &listItem{internal: item}
	}))
	b.catalogC.ResetSelected()
}

// showEpisodes lists the episodes of the open item and selects the current one.
func (b *statefulBubble) showEpisodes(item *catalog.Item) {
	b.episodesC.SetItems(lo.Map(item.Episodes, func(episode *catalog.Episode, _ int) list.Item {
		return &listItem{internal: episode}
	}))

	_, index, ok := lo.FindIndexOf(item.Episodes, func(e *catalog.Episode) bool {
		return e.ID == b.snapshot.EpisodeID
	})
	if ok {
		b.episodesC.Select(index)
	} else {
		b.episodesC.ResetSelected()
	}
}

// item returns the open item.
func (b *statefulBubble) item() (*catalog.Item, bool) {
	if b.snapshot.ContentID == "" {
		return nil, false
	}

	item, err := b.engine.Catalog().Item(b.snapshot.ContentID)
	return item, err == nil
}

// sync mirrors the engine state into the shell state.
func (b *statefulBubble) sync() {
	previous := b.snapshot.ContentID
	b.snapshot = b.engine.Snapshot()

	if b.snapshot.ContentID == "" {
		if b.state != searchState {
			b.setState(catalogState)
		}
		return
	}

	if item, ok := b.item(); ok && (previous != b.snapshot.ContentID || len(b.episodesC.Items()) != len(item.Episodes)) {
		b.showEpisodes(item)
	}

	// questions stay on screen while playback changes underneath
	if b.state == askState {
		return
	}

	switch b.snapshot.State {
	case playback.Playing:
		b.setState(playingState)
	case playback.Error:
		b.setState(errorState)
	default:
		b.setState(detailState)
	}
}
