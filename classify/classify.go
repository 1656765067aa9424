// Package classify maps raw video URLs to a delivery tag and a playable URL.
package classify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/seriesgenius/seriesgenius/util"
)

var (
	youtubeRe = regexp.MustCompile(`(?i)(?:youtube\.com/(?:shorts/|[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)(?P<id>[^"&?/\s]{11})`)
	vimeoRe   = regexp.MustCompile(`(?i)vimeo\.com/(?:channels/(?:\w+/)?|groups/[^/]*/videos/|album/\d+/video/|video/|)(?P<id>\d+)(?:$|/|\?)`)
)

const (
	youtubeEmbed  = "https://www.youtube.com/embed/%s?autoplay=1&rel=0&modestbranding=1"
	vimeoEmbed    = "https://player.vimeo.com/video/%s?autoplay=1"
	facebookEmbed = "https://www.facebook.com/plugins/video.php?href=%s&show_text=false&autoplay=1"
)

// Result is the outcome of classifying a URL.
type Result struct {
	Tag Tag    `json:"tag"`
	URL string `json:"url"`
}

// Classify resolves raw into a tag and the URL that should be played.
// It never fails: anything unrecognised is Native with the input unchanged.
func Classify(raw string) Result {
	if id, ok := youtubeID(raw); ok {
		return Result{Tag: EmbedYouTube, URL: fmt.Sprintf(youtubeEmbed, id)}
	}

	if id, ok := vimeoID(raw); ok {
		return Result{Tag: EmbedVimeo, URL: fmt.Sprintf(vimeoEmbed, id)}
	}

	if strings.Contains(host(raw), "facebook.com") {
		return Result{Tag: EmbedFacebook, URL: fmt.Sprintf(facebookEmbed, escapeComponent(raw))}
	}

	if strings.HasSuffix(strings.ToLower(path(raw)), ".m3u8") {
		return Result{Tag: Adaptive, URL: raw}
	}

	return Result{Tag: Native, URL: raw}
}

func youtubeID(raw string) (string, bool) {
	id, ok := util.ReGroups(youtubeRe, raw)["id"]
	return id, ok
}

func vimeoID(raw string) (string, bool) {
	id, ok := util.ReGroups(vimeoRe, raw)["id"]
	return id, ok
}

// host returns the lowercased host of raw, or all of raw lowercased when
// no host can be parsed out of it.
func host(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	return strings.ToLower(raw)
}

// path returns the path component of raw, or raw itself when it does not parse.
func path(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	return u.Path
}

// componentUnescaper turns url.QueryEscape output into encodeURIComponent
// output: spaces as %20 and !'()* kept literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes s for use as a single query value.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
