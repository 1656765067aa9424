// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/icon"
	"github.com/seriesgenius/seriesgenius/style"
)

// listItem implements the list.Item interface for catalog items and episodes.
type listItem struct {
	internal interface{}
	// row is the shelf an item was listed under
	row string
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *catalog.Item:
		mark := icon.Get(icon.Movie)
		if e.IsEpisodic() {
			mark = icon.Get(icon.Series)
		}
		title = fmt.Sprintf("%s %s", mark, e.Title)
	case *catalog.Episode:
		title = fmt.Sprintf("%s %s", style.Faint(e.Code()), e.Title)
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *catalog.Item:
		var parts []string
		if t.row != "" {
			parts = append(parts, t.row)
		}
		if e.Year > 0 {
			parts = append(parts, fmt.Sprint(e.Year))
		}
		if len(e.Genres) > 0 {
			parts = append(parts, strings.Join(e.Genres, ", "))
		}
		if e.Rating > 0 {
			parts = append(parts, fmt.Sprintf("★ %.1f", e.Rating))
		}
		description = strings.Join(parts, " · ")
	case *catalog.Episode:
		description = e.Duration
		if e.Description != "" {
			if description != "" {
				description += " · "
			}
			description += e.Description
		}
	}

	return
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *catalog.Item:
		return e.Title
	case *catalog.Episode:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
