package classify

import "strings"

// Provider is a recognised video host.
type Provider string

const (
	ProviderNone     Provider = ""
	ProviderYouTube  Provider = "youtube"
	ProviderVimeo    Provider = "vimeo"
	ProviderFacebook Provider = "facebook"
)

// Report describes a classification together with what the host looked like.
type Report struct {
	Result
	// Provider is the host family recognised in the URL, regardless of
	// whether a video id could be extracted.
	Provider Provider `json:"provider,omitempty"`
}

// Degraded reports whether the URL points at a known provider but fell
// through to another tag, usually because the video id is missing or malformed.
func (r Report) Degraded() bool {
	switch r.Provider {
	case ProviderYouTube:
		return r.Tag != EmbedYouTube
	case ProviderVimeo:
		return r.Tag != EmbedVimeo
	default:
		return false
	}
}

// Inspect classifies raw and records the provider its host belongs to.
func Inspect(raw string) Report {
	return Report{
		Result:   Classify(raw),
		Provider: provider(raw),
	}
}

func provider(raw string) Provider {
	host := host(raw)
	switch {
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return ProviderYouTube
	case strings.Contains(host, "vimeo.com"):
		return ProviderVimeo
	case strings.Contains(host, "facebook.com"):
		return ProviderFacebook
	default:
		return ProviderNone
	}
}
