// Package query remembers submitted catalog searches and suggests them back.
package query

import (
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/where"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank     int       `json:"rank"`
	Query    string    `json:"query"`
	LastUsed time.Time `json:"last_used"`
}

var (
	cacher = gache.New[map[string]*queryRecord](
		&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		},
	)

	mu              sync.Mutex
	suggestionCache = make(map[string][]*queryRecord)
)

// Remember records a search query or raises its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	record, ok := cached[q]
	if !ok {
		record = &queryRecord{Query: q}
		cached[q] = record
	}
	record.Rank += weight
	record.LastUsed = time.Now()

	// ranks changed, every cached suggestion list may be stale
	suggestionCache = make(map[string][]*queryRecord)
	return cacher.Set(cached)
}

// Suggest returns the best remembered query for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q, 1)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns up to limit remembered queries matching the partial
// input, highest rank first and most recent among equal ranks. A limit of
// zero or less returns all of them.
func SuggestMany(q string, limit int) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	records, ok := suggestionCache[q]
	if !ok {
		records = lookup(q)
		suggestionCache[q] = records
	}
	mu.Unlock()

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func lookup(q string) []*queryRecord {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return nil
	}

	records := lo.Filter(lo.Values(cached), func(r *queryRecord, _ int) bool {
		return r.Query != q && fuzzy.MatchFold(q, r.Query)
	})

	slices.SortFunc(records, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return b.LastUsed.Compare(a.LastUsed)
	})

	return records
}

// Forget drops every remembered query.
func Forget() error {
	mu.Lock()
	defer mu.Unlock()

	suggestionCache = make(map[string][]*queryRecord)
	return cacher.Set(make(map[string]*queryRecord))
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
