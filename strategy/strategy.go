// Package strategy decides how a classified URL is rendered.
package strategy

import "github.com/seriesgenius/seriesgenius/classify"

// Kind is a rendering strategy.
type Kind int

const (
	// PlainElement hands the URL to the media element directly.
	PlainElement Kind = iota
	// AdaptiveElement drives the media element through a streaming session.
	AdaptiveElement
	// Iframe opens a third-party embed player.
	Iframe
)

func (k Kind) String() string {
	switch k {
	case PlainElement:
		return "plain-element"
	case AdaptiveElement:
		return "adaptive-element"
	case Iframe:
		return "iframe"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Select maps a tag to the strategy that plays it.
// Every tag has a strategy; there is no unsupported outcome.
func Select(tag classify.Tag) Kind {
	switch tag {
	case classify.EmbedYouTube, classify.EmbedVimeo, classify.EmbedFacebook:
		return Iframe
	case classify.Adaptive:
		return AdaptiveElement
	case classify.Native:
		return PlainElement
	default:
		return PlainElement
	}
}

// Resolve classifies raw and selects its strategy in one step.
func Resolve(raw string) (classify.Result, Kind) {
	result := classify.Classify(raw)
	return result, Select(result.Tag)
}
