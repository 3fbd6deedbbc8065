package resolver

import (
	"regexp"
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

var (
	canonYouTube = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[?&]v=([^&#\s]+)`),
		regexp.MustCompile(`(?i)youtu\.be/([^?&#/\s]+)`),
		regexp.MustCompile(`(?i)youtube\.com/shorts/([^?&#/\s]+)`),
	}
	canonTikTok = []*regexp.Regexp{
		regexp.MustCompile(`(?i)/video/(\d+)`),
		regexp.MustCompile(`(?i)/t/([^/?&#\s]+)`),
		regexp.MustCompile(`(?i)vm\.tiktok\.com/([^/?&#\s]+)`),
	}
	canonInstagram = []*regexp.Regexp{
		regexp.MustCompile(`(?i)/p/([^/?&#\s]+)`),
		regexp.MustCompile(`(?i)/reel/([^/?&#\s]+)`),
		regexp.MustCompile(`(?i)/tv/([^/?&#\s]+)`),
	}
)

// CanonicalID extracts the platform-native content id from a video URL, so
// different URL shapes of the same video compare equal. Ids keep their case.
func CanonicalID(rawURL string) (model.Platform, string, bool) {
	u := strings.TrimSpace(rawURL)

	var patterns []*regexp.Regexp
	p := DetectPlatform(u)
	switch p {
	case model.PlatformYouTube:
		patterns = canonYouTube
	case model.PlatformTikTok:
		patterns = canonTikTok
	case model.PlatformInstagram:
		patterns = canonInstagram
	default:
		return model.PlatformNone, "", false
	}

	for _, re := range patterns {
		if m := re.FindStringSubmatch(u); m != nil {
			if id := unsafeChars.ReplaceAllString(m[1], ""); id != "" {
				return p, id, true
			}
		}
	}
	return p, "", false
}

// CanonicalKey returns "platform:id" for rawURL, or "" when no id is found.
func CanonicalKey(rawURL string) string {
	p, id, ok := CanonicalID(rawURL)
	if !ok {
		return ""
	}
	return string(p) + ":" + id
}
