// Package player provides the media element and the embed host that
// playback strategies are mounted on.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/open"
	"github.com/spf13/viper"
)

var (
	// ErrAutoplayBlocked is returned by Play when media is loaded but must
	// wait for the user to start it.
	ErrAutoplayBlocked = errors.New("autoplay blocked")
	// ErrUnsupported is reported when the element cannot decode the media.
	ErrUnsupported = errors.New("media not supported")
	// ErrUnknownPlayer is returned by New for an unregistered backend.
	ErrUnknownPlayer = errors.New("unknown player")
)

// Element is a media element: it loads and plays a single source at a time.
type Element interface {
	// CanPlayType reports whether the element plays the mime type natively.
	CanPlayType(mime string) bool

	// Load replaces the current source. Playback does not start until Play.
	Load(url, title string) error

	// Play starts playback of the loaded source.
	// It may return ErrAutoplayBlocked, which is not a playback failure.
	Play() error

	// Unload stops playback and drops the current source.
	Unload() error

	// OnError sets the handler for asynchronous playback errors of the
	// current source. Each owner replaces the previous handler; nil clears it.
	OnError(handler func(error))

	// Close releases the element.
	Close() error
}

// EmbedHost renders third-party embed players.
type EmbedHost interface {
	Open(url string) error
}

// SystemEmbedHost opens embed players with the system URL handler or App.
type SystemEmbedHost struct {
	App string
}

func (h SystemEmbedHost) Open(url string) error {
	return open.StartWith(url, h.App)
}

// NewEmbedHost returns the embed host configured by player.embed_app.
func NewEmbedHost() EmbedHost {
	return SystemEmbedHost{App: viper.GetString(key.PlayerEmbedApp)}
}

// Available lists the supported element backends.
func Available() []string {
	return []string{"mpv"}
}

// New returns the element backend called name, or the configured one when
// name is empty.
func New(name string) (Element, error) {
	if name == "" {
		name = viper.GetString(key.Player)
	}

	switch strings.ToLower(name) {
	case "mpv":
		return NewMPV(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}
}
