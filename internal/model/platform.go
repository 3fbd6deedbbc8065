package model

import "strings"

// Platform identifies one of the social networks tracked by the dashboard.
type Platform string

const (
	PlatformNone      Platform = ""
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
)

// Platforms lists the known platforms in their fixed priority order.
// Ties between platforms are always broken in this order.
var Platforms = []Platform{PlatformTikTok, PlatformYouTube, PlatformInstagram}

// ParsePlatform maps a free-form platform label to a known Platform.
// Unknown or empty labels return PlatformNone.
func ParsePlatform(label string) Platform {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "tiktok":
		return PlatformTikTok
	case "youtube":
		return PlatformYouTube
	case "instagram":
		return PlatformInstagram
	default:
		return PlatformNone
	}
}

// String returns the platform name, or "none" for PlatformNone.
func (p Platform) String() string {
	if p == PlatformNone {
		return "none"
	}
	return string(p)
}

// MarshalText encodes PlatformNone as "none" so absent platforms read the
// same in JSON as in text output.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (p *Platform) UnmarshalText(text []byte) error {
	if s := string(text); s != "none" {
		*p = Platform(s)
		return nil
	}
	*p = PlatformNone
	return nil
}

// Title returns the display name of the platform.
func (p Platform) Title() string {
	switch p {
	case PlatformTikTok:
		return "TikTok"
	case PlatformYouTube:
		return "YouTube"
	case PlatformInstagram:
		return "Instagram"
	default:
		return "None"
	}
}
