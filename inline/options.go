package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/util"
)

type (
	ItemPicker    func([]*catalog.Item) *catalog.Item
	EpisodePicker func([]*catalog.Episode) *catalog.Episode
)

type Options struct {
	Out     io.Writer
	Catalog *catalog.Catalog
	Json    bool
	// Query narrows the catalog before picking, empty keeps every item.
	Query         string
	ItemPicker    mo.Option[ItemPicker]
	EpisodePicker mo.Option[EpisodePicker]
	// ShareBase is the address share links of every result are built on.
	ShareBase string
}

func ParseItemPicker(kind, value string) (ItemPicker, error) {
	switch kind {
	case "first":
		return func(items []*catalog.Item) *catalog.Item {
			if len(items) == 0 {
				return nil
			}
			return items[0]
		}, nil
	case "last":
		return func(items []*catalog.Item) *catalog.Item {
			if len(items) == 0 {
				return nil
			}
			return items[len(items)-1]
		}, nil
	case "exact":
		return func(items []*catalog.Item) *catalog.Item {
			item, _ := lo.Find(items, func(i *catalog.Item) bool {
				return i.Title == value
			})
			return item
		}, nil
	case "id":
		return func(items []*catalog.Item) *catalog.Item {
			item, _ := lo.Find(items, func(i *catalog.Item) bool {
				return i.ID == value
			})
			return item
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(items []*catalog.Item) *catalog.Item {
			if len(items) == 0 {
				return nil
			}
			return items[util.Min(idx, uint64(len(items)-1))]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

func ParseEpisodePicker(kind, value string) (EpisodePicker, error) {
	switch kind {
	case "first":
		return func(episodes []*catalog.Episode) *catalog.Episode {
			if len(episodes) == 0 {
				return nil
			}
			return episodes[0]
		}, nil
	case "last":
		return func(episodes []*catalog.Episode) *catalog.Episode {
			if len(episodes) == 0 {
				return nil
			}
			return episodes[len(episodes)-1]
		}, nil
	case "id":
		return func(episodes []*catalog.Episode) *catalog.Episode {
			episode, _ := lo.Find(episodes, func(e *catalog.Episode) bool {
				return e.ID == value
			})
			return episode
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(episodes []*catalog.Episode) *catalog.Episode {
			if len(episodes) == 0 {
				return nil
			}
			return episodes[util.Min(idx, uint64(len(episodes)-1))]
		}, nil
	default:
		return nil, fmt.Errorf("unknown episode picker type: %s", kind)
	}
}
