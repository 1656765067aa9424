package inline

import (
	"encoding/json"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/classify"
	"github.com/seriesgenius/seriesgenius/strategy"
)

type Result struct {
	Item    *catalog.Item    `json:"item"`
	Episode *catalog.Episode `json:"episode,omitempty"`
	// URL is the url stored in the catalog, Play the one the strategy mounts.
	URL      string        `json:"url,omitempty"`
	Play     string        `json:"play,omitempty"`
	Tag      classify.Tag  `json:"tag"`
	Strategy strategy.Kind `json:"strategy"`
	// Degraded is set for provider urls without a usable video id.
	Degraded bool   `json:"degraded,omitempty"`
	Share    string `json:"share"`
}

type Output struct {
	Query  string    `json:"query"`
	Result []*Result `json:"result"`
}

func asJson(results []*Result, query string) ([]byte, error) {
	if results == nil {
		results = []*Result{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: results,
	})
}
