// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/color"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/insight"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/style"
	"github.com/seriesgenius/seriesgenius/util"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case catalogState:
		output = b.viewCatalog()
	case searchState:
		output = b.viewSearch()
	case detailState:
		output = b.viewDetail()
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	case askState:
		output = b.viewAsk()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewCatalog() string {
	return listExtraPaddingStyle.Render(b.catalogC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, "", style.Faint("tab: "+suggestion))
	}

	return b.renderLines(true, lines)
}

// header renders the title block of the open item.
func (b *statefulBubble) header(item *catalog.Item) []string {
	var meta []string
	if item.Year > 0 {
		meta = append(meta, fmt.Sprint(item.Year))
	}
	if item.Duration != "" {
		meta = append(meta, item.Duration)
	}
	if item.Rating > 0 {
		meta = append(meta, style.Fg(color.Yellow)(fmt.Sprintf("★ %.1f", item.Rating)))
	}
	if item.IsEpisodic() {
		meta = append(meta, util.Quantify(len(item.Episodes), "episode", "episodes"))
	}

	lines := []string{
		style.Title(item.Title),
		"",
		strings.Join(meta, " · "),
	}

	if len(item.Genres) > 0 {
		tags := make([]string, len(item.Genres))
		for i, genre := range item.Genres {
			tags[i] = style.Tag(style.Base, style.Peach)(genre)
		}
		lines = append(lines, strings.Join(tags, " "))
	}

	return lines
}

func (b *statefulBubble) viewDetail() string {
	item, ok := b.item()
	if !ok {
		return b.viewCatalog()
	}

	lines := b.header(item)

	if item.Description != "" {
		lines = append(lines, "", wordwrap.String(item.Description, util.Max(b.width, 20)))
	}

	if item.Director != "" {
		lines = append(lines, "", style.Faint("Director: ")+item.Director)
	}
	if len(item.Cast) > 0 {
		lines = append(lines, style.Faint("Cast: ")+strings.Join(item.Cast, ", "))
	}

	if viper.GetBool(key.TUIShowURLs) {
		if target, ok := b.snapshot.Target.Get(); ok {
			lines = append(lines, "", style.Faint(fmt.Sprintf("%s (%s)", target.URL, b.snapshot.Tag)))
		}
		if item.PosterURL != "" {
			lines = append(lines, style.Faint(item.PosterURL))
		}
	}

	label := "Video Not Available"
	if target, ok := b.snapshot.Target.Get(); ok {
		label = target.Label
	}
	lines = append(lines, "", style.Tag(style.Base, style.AccentColor)(icon.Get(icon.Play)+" "+label))

	if item.IsEpisodic() && len(item.Episodes) > 0 {
		lines = append(lines, "", b.episodesC.View())
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlaying() string {
	item, ok := b.item()
	if !ok {
		return b.viewCatalog()
	}

	var title string
	if target, ok := b.snapshot.Target.Get(); ok {
		title = target.Title
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		util.Truncate(fmt.Sprintf("%s %s", icon.Get(icon.Progress), style.Fg(color.Purple)(title)), util.Max(b.width, 20)),
		style.Faint(fmt.Sprintf("%s via %s", b.snapshot.Tag, b.snapshot.Strategy)),
	}

	if item.IsEpisodic() && len(item.Episodes) > 1 {
		lines = append(lines, "", b.episodesC.View())
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.snapshot.Message), util.Max(b.width, 20))

	lines := []string{
		style.ErrorTitle("Playback Error"),
		"",
		icon.Get(icon.Fail) + " " + errorMsg,
	}

	if target, ok := b.snapshot.Target.Get(); ok {
		lines = append(lines, "", style.Faint(target.URL))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewAsk() string {
	item, ok := b.item()
	if !ok || b.conversation == nil {
		return b.viewCatalog()
	}

	width := util.Max(b.width, 20)

	var history []string
	for _, message := range b.conversation.Messages() {
		prefix := style.Fg(style.AccentColor)(b.options.SiteName + " AI: ")
		if message.Role == insight.RoleUser {
			prefix = style.Fg(color.Purple)("You: ")
		}
		history = append(history, strings.Split(wordwrap.String(prefix+message.Text, width), "\n")...)
		history = append(history, "")
	}

	if b.conversation.Pending() {
		history = append(history, style.Faint(icon.Get(icon.Progress)+" Thinking..."))
	}

	// keep the latest messages when the history outgrows the screen
	if room := b.height - 8; room > 0 && len(history) > room {
		history = history[len(history)-room:]
	}

	lines := []string{style.Title("Ask about " + item.Title), ""}
	lines = append(lines, history...)
	lines = append(lines, "", b.askC.View())

	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
