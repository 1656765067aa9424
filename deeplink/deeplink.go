// Package deeplink carries the current selection in a link address and
// restores it when the catalog loads.
package deeplink

import (
	"errors"
	"net/url"
	"strings"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/constant"
)

// Query parameters of the link surface.
const (
	ParamContent = constant.QueryContent
	ParamEpisode = constant.QueryEpisode
)

// ErrNoSelection is returned by ParseLink for links that select nothing.
var ErrNoSelection = errors.New("link does not select any content")

// Selection is a content item and optionally one of its episodes.
type Selection struct {
	ContentID string `json:"content"`
	EpisodeID string `json:"episode,omitempty"`
}

// Plays reports whether restoring the selection starts playback.
func (s Selection) Plays() bool {
	return s.EpisodeID != ""
}

// Encode returns the parameters for a selection. The episode is omitted
// when empty.
func Encode(contentID, episodeID string) url.Values {
	values := url.Values{}
	if contentID == "" {
		return values
	}

	values.Set(ParamContent, contentID)
	if episodeID != "" {
		values.Set(ParamEpisode, episodeID)
	}
	return values
}

// Decode resolves values against c. It reports false when the content id
// is missing or unknown. An episode id that does not belong to the content
// is dropped.
func Decode(values url.Values, c *catalog.Catalog) (Selection, bool) {
	contentID := values.Get(ParamContent)
	if contentID == "" {
		return Selection{}, false
	}

	item, err := c.Item(contentID)
	if err != nil {
		return Selection{}, false
	}

	selection := Selection{ContentID: item.ID}
	if episodeID := values.Get(ParamEpisode); episodeID != "" {
		if episode, ok := item.FindEpisode(episodeID); ok {
			selection.EpisodeID = episode.ID
		}
	}

	return selection, true
}

// ShareURL builds the shareable address of a selection on base. Existing
// query parameters of base are kept.
func ShareURL(base, contentID, episodeID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + Encode(contentID, episodeID).Encode()
	}

	query := u.Query()
	query.Del(ParamContent)
	query.Del(ParamEpisode)
	for k, v := range Encode(contentID, episodeID) {
		query[k] = v
	}

	u.RawQuery = query.Encode()
	return u.String()
}

// ParseLink extracts the link parameters from a pasted share link. A bare
// query such as "content=2&episode=e2" is accepted too.
func ParseLink(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)

	var query string
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	} else if strings.Contains(raw, "=") && !strings.Contains(raw, "://") {
		query = raw
	}

	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	parsed, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	values := Encode(parsed.Get(ParamContent), parsed.Get(ParamEpisode))
	if len(values) == 0 {
		return nil, ErrNoSelection
	}
	return values, nil
}
