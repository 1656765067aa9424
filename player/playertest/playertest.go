// Package playertest provides in-memory media elements and embed hosts.
package playertest

import (
	"sync"

	"github.com/seriesgenius/seriesgenius/constant"
)

// Element records every call made to it and lets tests raise playback errors.
type Element struct {
	// Native lists the mime types CanPlayType accepts.
	Native []string
	// LoadErr and PlayErr are returned by Load and Play.
	LoadErr error
	PlayErr error

	mu      sync.Mutex
	source  string
	title   string
	playing bool
	loads   []string
	unloads int
	closed  bool
	handler func(error)
}

// NewElement returns an element that plays mp4 natively but not HLS.
func NewElement() *Element {
	return &Element{Native: []string{constant.MimeMP4}}
}

func (e *Element) CanPlayType(mime string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range e.Native {
		if m == mime {
			return true
		}
	}
	return false
}

func (e *Element) Load(url, title string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loads = append(e.loads, url)
	if e.LoadErr != nil {
		return e.LoadErr
	}
	e.source = url
	e.title = title
	e.playing = false
	return nil
}

func (e *Element) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.PlayErr != nil {
		return e.PlayErr
	}
	e.playing = true
	return nil
}

func (e *Element) Unload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unloads++
	e.source = ""
	e.playing = false
	return nil
}

func (e *Element) OnError(handler func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// Fail delivers err to the current error handler, as a decode failure would.
func (e *Element) Fail(err error) {
	e.mu.Lock()
	handler := e.handler
	e.mu.Unlock()

	if handler != nil {
		handler(err)
	}
}

// Source returns the loaded url.
func (e *Element) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Title returns the media title of the loaded source.
func (e *Element) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Playing reports whether Play succeeded since the last Load.
func (e *Element) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Loads returns every url passed to Load.
func (e *Element) Loads() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.loads...)
}

// Unloads returns how many times Unload was called.
func (e *Element) Unloads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unloads
}

// HasHandler reports whether an error handler is installed.
func (e *Element) HasHandler() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handler != nil
}

// Closed reports whether Close was called.
func (e *Element) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// EmbedHost records opened embed urls.
type EmbedHost struct {
	Err error

	mu     sync.Mutex
	opened []string
}

func (h *EmbedHost) Open(url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.opened = append(h.opened, url)
	return h.Err
}

// Opened returns every url passed to Open.
func (h *EmbedHost) Opened() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.opened...)
}
