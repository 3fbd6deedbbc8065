// Package resolver classifies social-media URLs, extracts account or content
// identifiers from them, and matches them against known videos and users.
package resolver

import (
	"regexp"
	"strings"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// segment matches one URL path segment.
const segment = `([^/?&#\s]+)`

var (
	tiktokUser      = regexp.MustCompile(`(?i)tiktok\.com/@` + segment)
	tiktokShort     = regexp.MustCompile(`(?i)tiktok\.com/t/` + segment)
	tiktokVM        = regexp.MustCompile(`(?i)vm\.tiktok\.com/` + segment)
	tiktokMobile    = regexp.MustCompile(`(?i)m\.tiktok\.com.*/@` + segment)
	tiktokVideo     = regexp.MustCompile(`(?i)/video/(\d+)`)
	youtubeHandle   = regexp.MustCompile(`(?i)youtube\.com/@` + segment)
	youtubeCustom   = regexp.MustCompile(`(?i)youtube\.com/c/` + segment)
	youtubeChannel  = regexp.MustCompile(`(?i)youtube\.com/channel/` + segment)
	youtubeUser     = regexp.MustCompile(`(?i)youtube\.com/user/` + segment)
	youtubeShorts   = regexp.MustCompile(`(?i)youtube\.com/shorts/` + segment)
	youtubeShortURL = regexp.MustCompile(`(?i)youtu\.be/` + segment)
	youtubeWatch    = regexp.MustCompile(`(?i)[?&]v=([^&#\s]+)`)
	instagramPost   = regexp.MustCompile(`(?i)instagram\.com/p/` + segment)
	instagramReel   = regexp.MustCompile(`(?i)instagram\.com/reel/` + segment)
	instagramTV     = regexp.MustCompile(`(?i)instagram\.com/tv/` + segment)
	instagramStory  = regexp.MustCompile(`(?i)instagram\.com/stories/` + segment)
	instagramUser   = regexp.MustCompile(`(?i)instagram\.com/` + segment + `/?(?:$|[?#])`)

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
)

// reservedInstagram are first path segments that never name a profile.
var reservedInstagram = map[string]bool{
	"p": true, "reel": true, "tv": true, "stories": true,
	"explore": true, "accounts": true, "direct": true, "about": true,
}

// mobileTikTok is the value reported for m.tiktok.com links without a username.
const mobileTikTok = "mobile"

// rule extracts one identifier shape. Usernames are lowercased; content ids
// keep their case because platforms treat them as case-sensitive.
type rule struct {
	re   *regexp.Regexp
	kind model.IdentifierKind
}

var (
	tiktokRules = []rule{
		{tiktokUser, model.KindUsername},
		{tiktokShort, model.KindShortLink},
		{tiktokVM, model.KindShortLink},
	}
	youtubeRules = []rule{
		{youtubeHandle, model.KindUsername},
		{youtubeCustom, model.KindUsername},
		{youtubeChannel, model.KindChannel},
		{youtubeUser, model.KindUsername},
		{youtubeShorts, model.KindShorts},
		{youtubeShortURL, model.KindVideo},
		{youtubeWatch, model.KindVideo},
	}
	instagramRules = []rule{
		{instagramPost, model.KindPost},
		{instagramReel, model.KindReel},
		{instagramTV, model.KindTV},
		{instagramStory, model.KindStory},
	}
)

// DetectPlatform reports which platform a URL belongs to from its domain
// token alone. Matching is case-insensitive.
func DetectPlatform(rawURL string) model.Platform {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	switch {
	case lower == "":
		return model.PlatformNone
	case strings.Contains(lower, "tiktok.com"):
		return model.PlatformTikTok
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		return model.PlatformYouTube
	case strings.Contains(lower, "instagram.com"):
		return model.PlatformInstagram
	default:
		return model.PlatformNone
	}
}

// Detect classifies rawURL and extracts a tagged identifier. A URL on a known
// platform always yields at least a KindDetected identifier; a URL on no known
// platform yields PlatformNone and a zero Identifier.
func Detect(rawURL string) (model.Platform, model.Identifier) {
	u := strings.TrimSpace(rawURL)
	p := DetectPlatform(u)

	switch p {
	case model.PlatformTikTok:
		if id, ok := firstMatch(u, tiktokRules); ok {
			return p, id
		}
		if strings.Contains(strings.ToLower(u), "m.tiktok.com") {
			if id, ok := extract(u, tiktokMobile, model.KindUsername); ok {
				return p, id
			}
			return p, model.Identifier{Kind: model.KindDetected, Value: mobileTikTok}
		}
		if id, ok := extract(u, tiktokVideo, model.KindVideo); ok {
			return p, id
		}
	case model.PlatformYouTube:
		if id, ok := firstMatch(u, youtubeRules); ok {
			return p, id
		}
	case model.PlatformInstagram:
		if id, ok := firstMatch(u, instagramRules); ok {
			return p, id
		}
		if m := instagramUser.FindStringSubmatch(u); m != nil && !reservedInstagram[strings.ToLower(m[1])] {
			if v := sanitize(m[1], model.KindUsername); v != "" {
				return p, model.Identifier{Kind: model.KindUsername, Value: v}
			}
		}
	default:
		return model.PlatformNone, model.Identifier{}
	}

	return p, model.Identifier{Kind: model.KindDetected}
}

func firstMatch(u string, rules []rule) (model.Identifier, bool) {
	for _, r := range rules {
		if id, ok := extract(u, r.re, r.kind); ok {
			return id, true
		}
	}
	return model.Identifier{}, false
}

// extract applies re and sanitizes the first capture group. A capture that
// sanitizes to nothing is treated as no match.
func extract(u string, re *regexp.Regexp, kind model.IdentifierKind) (model.Identifier, bool) {
	m := re.FindStringSubmatch(u)
	if m == nil {
		return model.Identifier{}, false
	}
	v := sanitize(m[1], kind)
	if v == "" {
		return model.Identifier{}, false
	}
	return model.Identifier{Kind: kind, Value: v}, true
}

// sanitize keeps only letters, digits, hyphen, underscore and dot.
func sanitize(v string, kind model.IdentifierKind) string {
	v = unsafeChars.ReplaceAllString(v, "")
	if kind.NamesAccount() {
		v = strings.ToLower(v)
	}
	return v
}
