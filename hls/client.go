package hls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bluenviron/gohlslib/v2/pkg/playlist"
	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/log"
	"github.com/seriesgenius/seriesgenius/network"
	"github.com/seriesgenius/seriesgenius/player"
	"github.com/spf13/viper"
)

// ErrDestroyed is returned by a client used after Destroy.
var ErrDestroyed = errors.New("stream client destroyed")

const (
	retryDelay     = 500 * time.Millisecond
	maxPlaylistLen = 8 << 20
)

// Client drives a segmented stream into a media element. Results of Load
// arrive as events.
type Client interface {
	// Load starts fetching the manifest in the background.
	Load(ctx context.Context, manifestURL string) error
	// Attach binds the media element the stream is played on.
	Attach(media player.Element) error
	// Destroy stops the client and releases the element. It does not wait
	// for background work to finish and is safe to call more than once.
	Destroy()
}

// Factory constructs a client that reports to emit.
type Factory func(emit func(Event)) Client

// Options tune a ManifestClient.
type Options struct {
	HTTP *http.Client
	// Retries is the number of attempts per request.
	Retries int
	// MaxBandwidth caps variant selection, 0 picks the highest.
	MaxBandwidth int
	// LiveRefresh keeps re-fetching live playlists while attached.
	LiveRefresh bool
	// Title is passed to the element with the stream.
	Title string
}

// DefaultOptions reads the hls.* keys.
func DefaultOptions() Options {
	return Options{
		HTTP:         network.New(),
		Retries:      viper.GetInt(key.HLSRetries),
		MaxBandwidth: viper.GetInt(key.HLSMaxBandwidth),
		LiveRefresh:  viper.GetBool(key.HLSLiveRefresh),
	}
}

// NewFactory returns a Factory of manifest clients sharing options.
func NewFactory(options Options) Factory {
	return func(emit func(Event)) Client {
		return NewManifestClient(emit, options)
	}
}

// ManifestClient fetches and decodes an HLS manifest, settles on a
// variant and hands its media playlist to the attached element.
type ManifestClient struct {
	options Options
	emit    func(Event)

	mu        sync.Mutex
	cancel    context.CancelFunc
	ctx       context.Context
	media     player.Element
	parsed    *Variant
	delivered bool
	destroyed bool
}

// NewManifestClient creates a client reporting to emit.
func NewManifestClient(emit func(Event), options Options) *ManifestClient {
	if options.HTTP == nil {
		options.HTTP = network.Client
	}
	options.Retries = max(options.Retries, 1)

	return &ManifestClient{options: options, emit: emit}
}

func (c *ManifestClient) Load(ctx context.Context, manifestURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrDestroyed
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.parsed = nil
	c.delivered = false

	go c.run(c.ctx, manifestURL)
	return nil
}

func (c *ManifestClient) Attach(media player.Element) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}

	c.media = media
	media.OnError(func(err error) {
		c.report(Fault(MediaError, true, err))
	})
	pending := c.deliverLocked()
	c.mu.Unlock()

	// the caller may hold locks its event handler needs
	go c.flush(pending)
	return nil
}

func (c *ManifestClient) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	c.destroyed = true

	if c.cancel != nil {
		c.cancel()
	}

	if c.media != nil {
		c.media.OnError(nil)
		if err := c.media.Unload(); err != nil {
			log.Warnf("hls: release media: %v", err)
		}
		c.media = nil
	}
}

func (c *ManifestClient) run(ctx context.Context, manifestURL string) {
	variant, media, err := c.resolve(ctx, manifestURL)
	if err != nil {
		if ctx.Err() == nil {
			c.report(classify(err))
		}
		return
	}

	c.mu.Lock()
	if ctx.Err() != nil || c.destroyed {
		c.mu.Unlock()
		return
	}
	c.parsed = &variant
	pending := c.deliverLocked()
	c.mu.Unlock()

	c.flush(pending)

	if variant.Live && c.options.LiveRefresh {
		c.refresh(ctx, variant.URL, media.TargetDuration)
	}
}

// deliverLocked loads the parsed variant into the element once both are
// known. The returned events are emitted after the lock is released.
func (c *ManifestClient) deliverLocked() []Event {
	if c.delivered || c.parsed == nil || c.media == nil {
		return nil
	}
	c.delivered = true

	if err := c.media.Load(c.parsed.URL, c.options.Title); err != nil {
		return []Event{Fault(MediaError, true, err)}
	}
	return []Event{Parsed(*c.parsed)}
}

func (c *ManifestClient) flush(events []Event) {
	for _, event := range events {
		c.report(event)
	}
}

func (c *ManifestClient) report(event Event) {
	c.mu.Lock()
	dead := c.destroyed
	c.mu.Unlock()

	if !dead && c.emit != nil {
		c.emit(event)
	}
}

// resolve fetches manifestURL and, for a multivariant playlist, the media
// playlist of the chosen variant.
func (c *ManifestClient) resolve(ctx context.Context, manifestURL string) (Variant, *playlist.Media, error) {
	decoded, err := c.fetchPlaylist(ctx, manifestURL)
	if err != nil {
		return Variant{}, nil, err
	}

	switch pl := decoded.(type) {
	case *playlist.Media:
		return Variant{URL: manifestURL, Live: !pl.Endlist}, pl, nil

	case *playlist.Multivariant:
		chosen, ok := SelectVariant(pl.Variants, c.options.MaxBandwidth)
		if !ok {
			return Variant{}, nil, manifestErr(errors.New("multivariant playlist has no variants"))
		}

		variantURL, err := resolveReference(manifestURL, chosen.URI)
		if err != nil {
			return Variant{}, nil, manifestErr(err)
		}

		decoded, err := c.fetchPlaylist(ctx, variantURL)
		if err != nil {
			return Variant{}, nil, err
		}

		media, ok := decoded.(*playlist.Media)
		if !ok {
			return Variant{}, nil, manifestErr(fmt.Errorf("variant %s is not a media playlist", variantURL))
		}

		return Variant{URL: variantURL, Bandwidth: chosen.Bandwidth, Live: !media.Endlist}, media, nil

	default:
		return Variant{}, nil, manifestErr(fmt.Errorf("unsupported playlist %T", decoded))
	}
}

// refresh polls a live media playlist every target duration until ctx ends.
func (c *ManifestClient) refresh(ctx context.Context, playlistURL string, target int) {
	interval := time.Duration(max(target, 1)) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		decoded, err := c.fetchPlaylist(ctx, playlistURL)
		if err != nil {
			if ctx.Err() == nil {
				c.report(classify(err))
			}
			return
		}

		media, ok := decoded.(*playlist.Media)
		if !ok {
			c.report(Fault(ManifestError, true, fmt.Errorf("live playlist %s changed type", playlistURL)))
			return
		}

		if media.Endlist {
			log.Infof("hls: live stream %s ended", playlistURL)
			return
		}
	}
}

// fetchPlaylist downloads and decodes a playlist, retrying network
// failures. Each failed attempt but the last is reported as non-fatal.
func (c *ManifestClient) fetchPlaylist(ctx context.Context, rawURL string) (playlist.Playlist, error) {
	var (
		body []byte
		err  error
	)

	for attempt := 1; attempt <= c.options.Retries; attempt++ {
		body, err = c.fetch(ctx, rawURL)
		if err == nil {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt < c.options.Retries {
			c.report(Fault(NetworkError, false, err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	if err != nil {
		return nil, networkErr(err)
	}

	decoded, err := playlist.Unmarshal(body)
	if err != nil {
		return nil, manifestErr(fmt.Errorf("decode %s: %w", rawURL, err))
	}
	return decoded, nil
}

func (c *ManifestClient) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.options.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPlaylistLen))
}

// SelectVariant picks the highest bandwidth variant not above limit. With
// no variant under the limit the lowest one is used. limit 0 means none.
func SelectVariant(variants []*playlist.MultivariantVariant, limit int) (*playlist.MultivariantVariant, bool) {
	variants = lo.Filter(variants, func(v *playlist.MultivariantVariant, _ int) bool {
		return v != nil && v.URI != ""
	})
	if len(variants) == 0 {
		return nil, false
	}

	under := variants
	if limit > 0 {
		under = lo.Filter(variants, func(v *playlist.MultivariantVariant, _ int) bool {
			return v.Bandwidth <= limit
		})
	}

	if len(under) == 0 {
		return lo.MinBy(variants, func(a, b *playlist.MultivariantVariant) bool {
			return a.Bandwidth < b.Bandwidth
		}), true
	}

	return lo.MaxBy(under, func(a, b *playlist.MultivariantVariant) bool {
		return a.Bandwidth > b.Bandwidth
	}), true
}

func resolveReference(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}

	return baseURL.ResolveReference(refURL).String(), nil
}

type fetchError struct {
	kind ErrorKind
	err  error
}

func (e *fetchError) Error() string { return e.err.Error() }
func (e *fetchError) Unwrap() error { return e.err }

func networkErr(err error) error  { return &fetchError{kind: NetworkError, err: err} }
func manifestErr(err error) error { return &fetchError{kind: ManifestError, err: err} }

// classify turns a resolution failure into a fatal error event.
func classify(err error) Event {
	var fe *fetchError
	if errors.As(err, &fe) {
		return Fault(fe.kind, true, fe.err)
	}
	return Fault(NetworkError, true, err)
}
