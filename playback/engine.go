// Package playback tracks what is open and playing, and mounts the
// strategy that plays it.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/classify"
	"github.com/seriesgenius/seriesgenius/hls"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/player"
	"github.com/seriesgenius/seriesgenius/strategy"
)

var (
	// ErrNoTarget is returned by RequestPlay when there is nothing to play.
	ErrNoTarget = errors.New("nothing to play")
	// ErrNoContent is returned by operations that need open content.
	ErrNoContent = errors.New("no content open")
)

// Mirror reflects the current selection somewhere outside the engine,
// such as the address a share link is built from. Implementations must
// not fail.
type Mirror interface {
	Mirror(contentID, episodeID string)
	Clear()
}

// Options wire an engine to its collaborators.
type Options struct {
	Catalog *catalog.Catalog
	Element player.Element
	Embeds  player.EmbedHost
	Streams hls.Factory
	// Mirror is optional.
	Mirror Mirror
	// SiteName brands media titles.
	SiteName string
}

// Engine is the playback state machine. All methods are safe for
// concurrent use; stream and element callbacks arrive on their own
// goroutines and are applied under the same lock.
type Engine struct {
	catalog  *catalog.Catalog
	element  player.Element
	embeds   player.EmbedHost
	session  *hls.Session
	mirror   Mirror
	siteName string
	ctx      context.Context

	mu         sync.Mutex
	state      State
	item       *catalog.Item
	episode    *catalog.Episode
	target     mo.Option[Target]
	message    string
	mounted    bool
	tag        classify.Tag
	kind       strategy.Kind
	generation int
	observers  map[int]func(Snapshot)
	observerID int
}

// New creates an engine with no content open.
func New(options Options) *Engine {
	e := &Engine{
		catalog:   options.Catalog,
		element:   options.Element,
		embeds:    options.Embeds,
		session:   hls.NewSession(options.Element, options.Streams),
		mirror:    options.Mirror,
		siteName:  options.SiteName,
		ctx:       context.Background(),
		state:     Preview,
		target:    mo.None[Target](),
		observers: make(map[int]func(Snapshot)),
	}
	e.session.OnChange(e.streamChanged)
	return e
}

// Catalog returns the catalog the engine resolves against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Session returns the adaptive stream session bound to the element.
func (e *Engine) Session() *hls.Session {
	return e.session
}

// OpenContent opens an item in Preview with its first episode selected.
func (e *Engine) OpenContent(id string) error {
	item, err := e.catalog.Item(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.openLocked(item)
	e.mirrorLocked()
	e.mu.Unlock()

	e.notify()
	return nil
}

// CloseContent tears down playback and clears the selection.
func (e *Engine) CloseContent() {
	e.mu.Lock()
	e.unmountLocked()
	e.item, e.episode = nil, nil
	e.state, e.message = Preview, ""
	e.target = mo.None[Target]()
	if e.mirror != nil {
		e.mirror.Clear()
	}
	e.mu.Unlock()

	e.notify()
}

// SelectEpisode switches to another episode of the open item and plays it.
// While playing the previous strategy is torn down before the new one mounts.
func (e *Engine) SelectEpisode(id string) error {
	e.mu.Lock()
	if e.item == nil {
		e.mu.Unlock()
		return ErrNoContent
	}

	episode, ok := e.item.FindEpisode(id)
	if !ok {
		itemID := e.item.ID
		e.mu.Unlock()
		return fmt.Errorf("%w: %q in %q", catalog.ErrUnknownEpisode, id, itemID)
	}

	e.episode = episode
	e.target = e.targetLocked()
	err := e.playLocked()
	e.mirrorLocked()
	e.mu.Unlock()

	e.notify()
	return err
}

// RequestPlay mounts the strategy for the current target. From Error it
// retries with a fresh classification and session.
func (e *Engine) RequestPlay() error {
	e.mu.Lock()
	err := e.playLocked()
	e.mirrorLocked()
	e.mu.Unlock()

	e.notify()
	return err
}

// ClosePlayer returns to Preview, keeping the selection.
func (e *Engine) ClosePlayer() {
	e.mu.Lock()
	e.unmountLocked()
	e.state, e.message = Preview, ""
	e.mirrorLocked()
	e.mu.Unlock()

	e.notify()
}

// Restore applies a selection decoded from a link. An unknown content id
// is ignored and false is returned. A known episode of that content is
// played right away, otherwise the content opens in Preview.
func (e *Engine) Restore(contentID, episodeID string) bool {
	item, err := e.catalog.Item(contentID)
	if err != nil {
		log.Infof("playback: ignoring link to %v", err)
		return false
	}

	e.mu.Lock()
	e.openLocked(item)
	if episode, ok := item.FindEpisode(episodeID); ok && episodeID != "" {
		e.episode = episode
		e.target = e.targetLocked()
		if err := e.playLocked(); err != nil {
			log.Warnf("playback: restore %s/%s: %v", contentID, episodeID, err)
		}
	} else if episodeID != "" {
		log.Infof("playback: ignoring unknown episode %q of %q", episodeID, contentID)
	}
	e.mirrorLocked()
	e.mu.Unlock()

	e.notify()
	return true
}

// Target returns the current playback target.
func (e *Engine) Target() mo.Option[Target] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns the whole engine state at once.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes it.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.observerID++
	id := e.observerID
	e.observers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, id)
	}
}

// Close tears down playback and releases the element.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unmountLocked()
	e.session.Detach()
	return e.element.Close()
}

func (e *Engine) openLocked(item *catalog.Item) {
	e.unmountLocked()
	e.item = item
	e.episode = nil
	if first, ok := item.FirstEpisode(); ok {
		e.episode = first
	}
	e.state, e.message = Preview, ""
	e.target = e.targetLocked()
}

func (e *Engine) playLocked() error {
	target, ok := e.target.Get()
	if !ok {
		return ErrNoTarget
	}

	e.unmountLocked()
	e.generation++
	generation := e.generation

	result, kind := strategy.Resolve(target.URL)
	e.tag, e.kind = result.Tag, kind
	e.mounted = true
	e.state, e.message = Playing, ""

	log.Infof("playback: mounting %s for %s (%s)", kind, target.URL, result.Tag)

	switch kind {
	case strategy.Iframe:
		// embed failures are not observable from here
		if err := e.embeds.Open(result.URL); err != nil {
			log.Warnf("playback: open embed %s: %v", result.URL, err)
		}

	case strategy.AdaptiveElement:
		if err := e.session.Mount(e.ctx, result.URL, target.Title); err != nil {
			e.failLocked(StreamErrorMessage, err)
		}

	case strategy.PlainElement:
		e.element.OnError(func(err error) {
			e.elementFailed(generation, err)
		})

		if err := e.element.Load(result.URL, target.Title); err != nil {
			e.failLocked(NativeErrorMessage, err)
			break
		}

		if err := e.element.Play(); err != nil {
			if errors.Is(err, player.ErrAutoplayBlocked) {
				log.Info("playback: autoplay blocked, waiting for the user")
			} else {
				e.failLocked(NativeErrorMessage, err)
			}
		}
	}

	return nil
}

func (e *Engine) unmountLocked() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.generation++

	switch e.kind {
	case strategy.AdaptiveElement:
		e.session.Detach()
	case strategy.PlainElement:
		e.element.OnError(nil)
		if err := e.element.Unload(); err != nil {
			log.Warnf("playback: unload: %v", err)
		}
	}
}

func (e *Engine) failLocked(message string, err error) {
	log.Errorf("playback: %v", err)
	e.state = Error
	e.message = message
}

// streamChanged applies asynchronous session transitions.
func (e *Engine) streamChanged(hls.Status) {
	e.mu.Lock()
	if !e.mounted || e.kind != strategy.AdaptiveElement || e.state != Playing {
		e.mu.Unlock()
		return
	}

	// the reported status may be stale, the session's current one is not
	status := e.session.Status()
	if status.State != hls.Errored {
		e.mu.Unlock()
		return
	}

	e.state = Error
	e.message = status.Message
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) elementFailed(generation int, err error) {
	e.mu.Lock()
	if generation != e.generation || e.state != Playing {
		e.mu.Unlock()
		return
	}
	e.failLocked(NativeErrorMessage, err)
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) targetLocked() mo.Option[Target] {
	if e.item == nil {
		return mo.None[Target]()
	}

	target := Target{
		PosterURL: e.item.PosterURL,
		ContentID: e.item.ID,
		Title:     MediaTitle(e.item.Title, e.siteName),
		Label:     Label(e.item, e.episode),
	}

	if e.item.IsEpisodic() {
		if e.episode == nil {
			return mo.None[Target]()
		}
		target.EpisodeID = e.episode.ID
		target.URL = e.episode.URL
	} else {
		target.URL = e.item.PrimaryURL
	}

	if target.URL == "" {
		return mo.None[Target]()
	}
	return mo.Some(target)
}

// mirrorLocked writes the open content to the address. The episode is only
// written while it is mounted, since a linked episode plays on restore.
func (e *Engine) mirrorLocked() {
	if e.mirror == nil || e.item == nil {
		return
	}

	episodeID := ""
	if e.mounted && e.episode != nil {
		episodeID = e.episode.ID
	}
	e.mirror.Mirror(e.item.ID, episodeID)
}

func (e *Engine) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		State:   e.state,
		Target:  e.target,
		Message: e.message,
	}

	if e.item != nil {
		snapshot.ContentID = e.item.ID
	}
	if e.episode != nil {
		snapshot.EpisodeID = e.episode.ID
	}
	if e.mounted {
		snapshot.Tag, snapshot.Strategy = e.tag, e.kind
	} else if target, ok := e.target.Get(); ok {
		snapshot.Tag, snapshot.Strategy = resolveTag(target.URL)
	}

	return snapshot
}

func (e *Engine) notify() {
	e.mu.Lock()
	snapshot := e.snapshotLocked()
	observers := lo.Values(e.observers)
	e.mu.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
}

func resolveTag(url string) (classify.Tag, strategy.Kind) {
	result, kind := strategy.Resolve(url)
	return result.Tag, kind
}

// MediaTitle is the title shown by the player, e.g. "Watch Mountain Peak | SeriesGenius".
func MediaTitle(title, siteName string) string {
	if siteName == "" {
		return "Watch " + title
	}
	return fmt.Sprintf("Watch %s | %s", title, siteName)
}

// Label is the call to action for item with episode selected.
func Label(item *catalog.Item, episode *catalog.Episode) string {
	switch {
	case item.IsEpisodic() && episode != nil && episode.URL != "":
		return "Watch " + episode.Code()
	case !item.IsEpisodic() && item.PrimaryURL != "":
		return "Watch Now"
	default:
		return "Video Not Available"
	}
}
