// Package catalog holds the read-only content catalog the player resolves against.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

var (
	ErrUnknownContent = errors.New("unknown content")
	ErrUnknownEpisode = errors.New("unknown episode")
	ErrInvalid        = errors.New("invalid catalog")
)

// Catalog is an ordered, immutable sequence of items.
type Catalog struct {
	items    []*Item
	byID     map[string]*Item
	episodes map[string]*Item
}

// New validates items and builds a catalog over them.
func New(items []*Item) (*Catalog, error) {
	c := &Catalog{
		items:    slices.Clone(items),
		byID:     make(map[string]*Item, len(items)),
		episodes: make(map[string]*Item),
	}

	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	for index, item := range items {
		if item == nil {
			invalid("item #%d is empty", index)
			continue
		}

		if strings.TrimSpace(item.ID) == "" {
			invalid("item #%d (%s) has no id", index, item.Title)
			continue
		}

		if _, ok := c.byID[item.ID]; ok {
			invalid("duplicate content id %q", item.ID)
			continue
		}
		c.byID[item.ID] = item

		switch item.Kind {
		case Single:
			if item.PrimaryURL == "" {
				invalid("content %q is single but has no video url", item.ID)
			}
			if len(item.Episodes) > 0 {
				invalid("content %q is single but lists episodes", item.ID)
			}
		case Episodic:
			if item.PrimaryURL != "" {
				invalid("content %q is episodic but has a video url", item.ID)
			}
		default:
			invalid("content %q has unknown kind %q", item.ID, item.Kind)
		}

		for _, episode := range item.Episodes {
			if episode == nil || strings.TrimSpace(episode.ID) == "" {
				invalid("content %q has an episode without id", item.ID)
				continue
			}

			if owner, ok := c.episodes[episode.ID]; ok {
				invalid("episode id %q used by both %q and %q", episode.ID, owner.ID, item.ID)
				continue
			}
			c.episodes[episode.ID] = item

			if episode.Season <= 0 || episode.Number <= 0 {
				invalid("episode %q must have a positive season and number", episode.ID)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return c, nil
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []*Item {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*Item, error) {
	if item, ok := c.byID[id]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContent, id)
}

// Episode looks up an episode scoped to its parent item.
func (c *Catalog) Episode(itemID, episodeID string) (*Episode, error) {
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}

	if episode, ok := item.FindEpisode(episodeID); ok {
		return episode, nil
	}
	return nil, fmt.Errorf("%w: %q in %q", ErrUnknownEpisode, episodeID, itemID)
}

// Owner returns the item an episode id belongs to.
func (c *Catalog) Owner(episodeID string) mo.Option[*Item] {
	if item, ok := c.episodes[episodeID]; ok {
		return mo.Some(item)
	}
	return mo.None[*Item]()
}

// Default returns the first item, shown when nothing else is selected.
func (c *Catalog) Default() mo.Option[*Item] {
	if len(c.items) == 0 {
		return mo.None[*Item]()
	}
	return mo.Some(c.items[0])
}
