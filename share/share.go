// Package share hands share links to whatever facility the platform has,
// falling back from native sharing to the clipboard to plain output.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/seriesgenius/seriesgenius/log"
)

// ErrUnavailable is returned by a Sharer that cannot run here.
var ErrUnavailable = errors.New("share facility unavailable")

// Request is what gets shared.
type Request struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewRequest builds the request for sharing title, e.g. "Watch Mountain Peak on SeriesGenius".
func NewRequest(title, siteName, link string) Request {
	text := "Watch " + title
	if siteName != "" {
		text = fmt.Sprintf("Watch %s on %s", title, siteName)
	}

	return Request{Title: title, Text: text, URL: link}
}

// Sharer is a single share facility.
type Sharer interface {
	Share(ctx context.Context, request Request) error
}

// Method identifies which facility shared a request.
type Method int

const (
	MethodNone Method = iota
	MethodNative
	MethodClipboard
	MethodManual
)

func (m Method) String() string {
	switch m {
	case MethodNative:
		return "native"
	case MethodClipboard:
		return "clipboard"
	case MethodManual:
		return "manual"
	default:
		return "none"
	}
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type step struct {
	method Method
	sharer Sharer
}

// Chain tries its facilities in order until one succeeds.
type Chain struct {
	steps []step
}

// NewChain returns the default chain: native, clipboard, then manual
// output to out.
func NewChain(out io.Writer) *Chain {
	return (&Chain{}).
		With(MethodNative, NewNative()).
		With(MethodClipboard, NewClipboard()).
		With(MethodManual, NewManual(out))
}

// With appends a facility to the chain.
func (c *Chain) With(method Method, sharer Sharer) *Chain {
	c.steps = append(c.steps, step{method: method, sharer: sharer})
	return c
}

// Share returns the method that shared request, or MethodNone when every
// facility failed. Failures are logged, never returned.
func (c *Chain) Share(ctx context.Context, request Request) Method {
	for _, s := range c.steps {
		if ctx.Err() != nil {
			log.Warnf("share: %v", ctx.Err())
			return MethodNone
		}

		err := s.sharer.Share(ctx, request)
		if err == nil {
			log.Infof("share: shared %s via %s", request.URL, s.method)
			return s.method
		}

		if errors.Is(err, ErrUnavailable) {
			log.Debugf("share: %s unavailable", s.method)
		} else {
			log.Warnf("share: %s: %v", s.method, err)
		}
	}

	return MethodNone
}
