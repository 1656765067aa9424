package catalog

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const recentLimit = 5

// Row is a titled shelf of items.
type Row struct {
	Title string
	Items []*Item
}

// Rows groups the catalog into browsing shelves. Empty shelves are dropped.
func (c *Catalog) Rows() []Row {
	if c.Len() == 0 {
		return nil
	}

	recent := make([]*Item, 0, recentLimit)
	for i := len(c.items) - 1; i >= 0 && len(recent) < recentLimit; i-- {
		recent = append(recent, c.items[i])
	}

	rows := []Row{
		{Title: "Trending Now", Items: c.items},
		{Title: "TV Series", Items: lo.Filter(c.items, func(i *Item, _ int) bool { return i.IsEpisodic() })},
		{Title: "Action & Adventure", Items: lo.Filter(c.items, func(i *Item, _ int) bool { return i.HasGenre("Action") })},
		{Title: "Critically Acclaimed Dramas", Items: lo.Filter(c.items, func(i *Item, _ int) bool { return i.HasGenre("Drama") })},
		{Title: "Recently Added", Items: recent},
	}

	return lo.Filter(rows, func(r Row, _ int) bool { return len(r.Items) > 0 })
}

// Search returns items whose title or a genre matches query, ignoring case.
// Substring matches come first, fuzzy title matches after them.
func (c *Catalog) Search(query string) []*Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.items
	}

	lower := strings.ToLower(query)
	exact := lo.Filter(c.items, func(i *Item, _ int) bool {
		return strings.Contains(strings.ToLower(i.Title), lower) || i.HasGenre(lower)
	})

	fuzzyMatches := lo.Filter(c.items, func(i *Item, _ int) bool {
		return !lo.Contains(exact, i) && fuzzy.MatchNormalizedFold(query, i.Title)
	})

	return append(exact, fuzzyMatches...)
}

// SearchRow wraps the search results in a single shelf.
func (c *Catalog) SearchRow(query string) Row {
	return Row{
		Title: fmt.Sprintf("Search Results for %q", query),
		Items: c.Search(query),
	}
}
