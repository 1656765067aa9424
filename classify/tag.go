package classify

// Tag identifies how a URL must be delivered.
type Tag int

const (
	// Native is a plain media file handed to the element as is.
	Native Tag = iota
	// Adaptive is a segmented HLS stream.
	Adaptive
	// EmbedYouTube is a YouTube video played through its embed player.
	EmbedYouTube
	// EmbedVimeo is a Vimeo video played through its embed player.
	EmbedVimeo
	// EmbedFacebook is a Facebook video played through the video plugin.
	EmbedFacebook
)

// Tags lists every tag in declaration order.
func Tags() []Tag {
	return []Tag{Native, Adaptive, EmbedYouTube, EmbedVimeo, EmbedFacebook}
}

func (t Tag) String() string {
	switch t {
	case Native:
		return "native"
	case Adaptive:
		return "adaptive"
	case EmbedYouTube:
		return "embed-youtube"
	case EmbedVimeo:
		return "embed-vimeo"
	case EmbedFacebook:
		return "embed-facebook"
	default:
		return "unknown"
	}
}

// IsEmbed reports whether the tag belongs to a third-party embed provider.
func (t Tag) IsEmbed() bool {
	switch t {
	case EmbedYouTube, EmbedVimeo, EmbedFacebook:
		return true
	default:
		return false
	}
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
