package playback

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/seriesgenius/seriesgenius/classify"
	"github.com/seriesgenius/seriesgenius/hls"
	"github.com/seriesgenius/seriesgenius/strategy"
)

// User-facing playback failures. The stream message points at the
// manifest, the native one at the file itself.
const (
	StreamErrorMessage = hls.ErrorMessage
	NativeErrorMessage = "Unable to play video. Format may not be supported or link is broken."
)

// State is the lifecycle state of the open content item.
type State int

const (
	// Preview shows the poster, nothing is mounted.
	Preview State = iota
	// Playing has a strategy mounted for the current target.
	Playing
	// Error means the mounted strategy failed.
	Error
)

func (s State) String() string {
	switch s {
	case Preview:
		return "preview"
	case Playing:
		return "playing"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Target is the unit currently eligible for playback.
type Target struct {
	URL       string `json:"url"`
	PosterURL string `json:"poster,omitempty"`
	ContentID string `json:"content"`
	EpisodeID string `json:"episode,omitempty"`
	// Title is the media title handed to the element.
	Title string `json:"title"`
	// Label is the call to action shown next to the poster.
	Label string `json:"label"`
}

// Snapshot is a consistent view of the engine.
type Snapshot struct {
	State     State             `json:"state"`
	ContentID string            `json:"content,omitempty"`
	EpisodeID string            `json:"episode,omitempty"`
	Target    mo.Option[Target] `json:"target"`
	Message   string            `json:"message,omitempty"`
	Tag       classify.Tag      `json:"tag"`
	Strategy  strategy.Kind     `json:"strategy"`
}

func (s Snapshot) String() string {
	if s.ContentID == "" {
		return s.State.String()
	}
	if s.EpisodeID == "" {
		return fmt.Sprintf("%s %s", s.State, s.ContentID)
	}
	return fmt.Sprintf("%s %s/%s", s.State, s.ContentID, s.EpisodeID)
}
