package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Kind tells whether an item is played from a single URL or from its episodes.
type Kind string

const (
	Single   Kind = "single"
	Episodic Kind = "episodic"
)

// UnmarshalText accepts the canonical kinds and the movie/series aliases
// older catalog files were written with.
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "single", "movie":
		*k = Single
	case "episodic", "series":
		*k = Episodic
	default:
		return fmt.Errorf("unknown content kind %q", string(text))
	}
	return nil
}

// Item is a piece of content in the catalog.
type Item struct {
	ID          string     `json:"id" jsonschema:"required,minLength=1"`
	Kind        Kind       `json:"type" jsonschema:"required,enum=single,enum=episodic,enum=movie,enum=series"`
	Title       string     `json:"title" jsonschema:"required"`
	Description string     `json:"description,omitempty"`
	Genres      []string   `json:"genre,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Rating      float64    `json:"rating,omitempty" jsonschema:"minimum=0,maximum=5"`
	Year        int        `json:"year,omitempty"`
	PosterURL   string     `json:"imageUrl,omitempty"`
	PrimaryURL  string     `json:"videoUrl,omitempty"`
	Cast        []string   `json:"cast,omitempty"`
	Director    string     `json:"director,omitempty"`
	Episodes    []*Episode `json:"episodes,omitempty"`
}

// Episode is a single playable part of episodic content.
type Episode struct {
	ID           string `json:"id" jsonschema:"required,minLength=1"`
	Title        string `json:"title"`
	Season       int    `json:"season" jsonschema:"required,minimum=1"`
	Number       int    `json:"episodeNumber" jsonschema:"required,minimum=1"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"videoUrl" jsonschema:"required"`
	Duration     string `json:"duration,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

func (i *Item) String() string {
	return i.Title
}

// IsEpisodic reports whether the item is played through its episodes.
func (i *Item) IsEpisodic() bool {
	return i.Kind == Episodic
}

// FirstEpisode returns the first episode in catalog order, if any.
func (i *Item) FirstEpisode() (*Episode, bool) {
	if !i.IsEpisodic() || len(i.Episodes) == 0 {
		return nil, false
	}
	return i.Episodes[0], true
}

// FindEpisode looks up an episode of this item by id.
func (i *Item) FindEpisode(id string) (*Episode, bool) {
	return lo.Find(i.Episodes, func(e *Episode) bool {
		return e.ID == id
	})
}

// HasGenre reports whether any genre contains sub, ignoring case.
func (i *Item) HasGenre(sub string) bool {
	sub = strings.ToLower(sub)
	return lo.ContainsBy(i.Genres, func(g string) bool {
		return strings.Contains(strings.ToLower(g), sub)
	})
}

func (e *Episode) String() string {
	return fmt.Sprintf("S%d:E%d %s", e.Season, e.Number, e.Title)
}

// Code returns the short season/episode marker, e.g. S1:E2.
func (e *Episode) Code() string {
	return fmt.Sprintf("S%d:E%d", e.Season, e.Number)
}
