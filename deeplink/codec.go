package deeplink

import (
	"net/url"
	"sync"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/log"
)

// Codec mirrors the selection into a location and decodes it back once
// per catalog load.
type Codec struct {
	location LocationPort

	mu       sync.Mutex
	resolved map[*catalog.Catalog]struct{}
}

// NewCodec binds a codec to location.
func NewCodec(location LocationPort) *Codec {
	return &Codec{
		location: location,
		resolved: make(map[*catalog.Catalog]struct{}),
	}
}

// Location returns the bound location.
func (c *Codec) Location() LocationPort {
	return c.location
}

// Mirror rewrites the address to carry the selection. Other parameters
// of the address are kept. Failures are logged and otherwise ignored.
func (c *Codec) Mirror(contentID, episodeID string) {
	c.update(func(values url.Values) {
		delete(values, ParamContent)
		delete(values, ParamEpisode)
		for k, v := range Encode(contentID, episodeID) {
			values[k] = v
		}
	})
}

// Clear removes the selection from the address.
func (c *Codec) Clear() {
	c.update(func(values url.Values) {
		delete(values, ParamContent)
		delete(values, ParamEpisode)
	})
}

func (c *Codec) update(change func(url.Values)) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("deeplink: location panicked: %v", r)
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	values, err := c.location.Read()
	if err != nil {
		log.Warnf("deeplink: read location: %v", err)
		values = nil
	}
	if values == nil {
		values = url.Values{}
	}

	change(values)

	if err := c.location.Write(values); err != nil {
		log.Warnf("deeplink: write location: %v", err)
	}
}

// Resolve decodes the address against cat. It only decodes once for a
// given catalog, later calls report false.
func (c *Codec) Resolve(cat *catalog.Catalog) (selection Selection, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("deeplink: location panicked: %v", r)
			selection, ok = Selection{}, false
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, done := c.resolved[cat]; done {
		return Selection{}, false
	}
	c.resolved[cat] = struct{}{}

	values, err := c.location.Read()
	if err != nil {
		log.Warnf("deeplink: read location: %v", err)
		return Selection{}, false
	}

	selection, ok = Decode(values, cat)
	if !ok && values.Get(ParamContent) != "" {
		log.Infof("deeplink: ignoring unknown content %q", values.Get(ParamContent))
	}
	return selection, ok
}
