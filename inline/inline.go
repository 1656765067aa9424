// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/classify"
	"github.com/seriesgenius/seriesgenius/deeplink"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/strategy"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Narrow the catalog by the query.
	items := options.Catalog.Items()
	if options.Query != "" {
		items = options.Catalog.Search(options.Query)
	}

	// Step 2: Apply item selection logic if a picker is defined.
	selected := items
	if options.ItemPicker.IsPresent() {
		selected = nil
		if choice := options.ItemPicker.MustGet()(items); choice != nil {
			selected = []*catalog.Item{choice}
		}
	}

	// Step 3: Resolve the playback target of every selected item.
	var results []*Result
	for _, item := range selected {
		results = append(results, resolve(item, options)...)
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, results, options)
	}

	for _, result := range results {
		log.Info("Resolved " + result.Item.Title)
		if _, err := fmt.Fprintf(options.Out, "%s\t%s\t%s\n", result.Tag, result.Strategy, result.Play); err != nil {
			return err
		}
	}

	return nil
}

func resolve(item *catalog.Item, options *Options) []*Result {
	if !item.IsEpisodic() {
		return []*Result{newResult(item, nil, item.PrimaryURL, options)}
	}

	episodes := item.Episodes
	if options.EpisodePicker.IsPresent() {
		episodes = nil
		if choice := options.EpisodePicker.MustGet()(item.Episodes); choice != nil {
			episodes = []*catalog.Episode{choice}
		}
	}

	results := make([]*Result, 0, len(episodes))
	for _, episode := range episodes {
		results = append(results, newResult(item, episode, episode.URL, options))
	}
	return results
}

func newResult(item *catalog.Item, episode *catalog.Episode, raw string, options *Options) *Result {
	episodeID := ""
	if episode != nil {
		episodeID = episode.ID
	}

	result := &Result{
		Item:    item,
		Episode: episode,
		URL:     raw,
		Share:   deeplink.ShareURL(options.ShareBase, item.ID, episodeID),
	}

	if raw == "" {
		return result
	}

	report := classify.Inspect(raw)
	result.Play = report.URL
	result.Tag = report.Tag
	result.Strategy = strategy.Select(report.Tag)
	result.Degraded = report.Degraded()
	return result
}

func writeJson(out io.Writer, results []*Result, options *Options) error {
	data, err := asJson(results, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
