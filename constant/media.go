package constant

// MIME types queried against the media element.
const (
	MimeHLS = "application/vnd.apple.mpegurl"
	MimeMP4 = "video/mp4"
)

// Deep-link query parameter names.
const (
	QueryContent = "content"
	QueryEpisode = "episode"
)
