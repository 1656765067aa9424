package catalog

import (
	"fmt"

	"github.com/seriesgenius/seriesgenius/classify"
)

// Warning is a non-fatal problem found in catalog data.
type Warning struct {
	ContentID string `json:"content"`
	EpisodeID string `json:"episode,omitempty"`
	URL       string `json:"url"`
	Message   string `json:"message"`
}

func (w Warning) String() string {
	if w.EpisodeID != "" {
		return fmt.Sprintf("%s/%s: %s", w.ContentID, w.EpisodeID, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.ContentID, w.Message)
}

// Lint reports video urls that will not play the way they look like they should.
func (c *Catalog) Lint() []Warning {
	var warnings []Warning

	check := func(contentID, episodeID, raw string) {
		if raw == "" {
			warnings = append(warnings, Warning{
				ContentID: contentID,
				EpisodeID: episodeID,
				Message:   "no video url",
			})
			return
		}

		report := classify.Inspect(raw)
		if report.Degraded() {
			warnings = append(warnings, Warning{
				ContentID: contentID,
				EpisodeID: episodeID,
				URL:       raw,
				Message:   fmt.Sprintf("looks like a %s link but no video id was found, it will be played as a plain file", report.Provider),
			})
		}
	}

	for _, item := range c.items {
		if item.IsEpisodic() {
			if len(item.Episodes) == 0 {
				warnings = append(warnings, Warning{ContentID: item.ID, Message: "series has no episodes"})
			}
			for _, episode := range item.Episodes {
				check(item.ID, episode.ID, episode.URL)
			}
			continue
		}

		check(item.ID, "", item.PrimaryURL)
	}

	return warnings
}
