package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var watchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/shorts/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`m\.youtube\.com/watch\?v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/.*[?&]v=([0-9A-Za-z_-]{11})`),
}

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?#/]|$)`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// CanonicalURL reports the canonical watch (or shorts) URL when the input
// already looks like a YouTube link, and "" when it is a free-text query.
func CanonicalURL(input string) string {
	for _, pat := range watchPatterns {
		m := pat.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		id := m[1]
		if strings.Contains(strings.ToLower(input), "shorts") {
			return fmt.Sprintf("https://www.youtube.com/shorts/%s", id)
		}
		return WatchURL(id)
	}
	return ""
}

// ExtractVideoID pulls the 11-character video id out of a URL. A bare id
// passes through unchanged.
func ExtractVideoID(url string) string {
	for _, pat := range idPatterns {
		if m := pat.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	if len(url) == 11 {
		return url
	}
	return ""
}

func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
