package model

import "github.com/goccy/go-json"

// IdentifierKind tags what an identifier extracted from a URL names.
type IdentifierKind string

const (
	KindNone      IdentifierKind = ""
	KindUsername  IdentifierKind = "username"
	KindChannel   IdentifierKind = "channel"
	KindShortLink IdentifierKind = "short-link"
	KindVideo     IdentifierKind = "video"
	KindShorts    IdentifierKind = "shorts"
	KindPost      IdentifierKind = "post"
	KindReel      IdentifierKind = "reel"
	KindTV        IdentifierKind = "tv"
	KindStory     IdentifierKind = "story"
	KindDetected  IdentifierKind = "detected"
)

// Opaque reports whether the kind names content rather than an account.
// Only usernames may be treated as platform handles.
func (k IdentifierKind) Opaque() bool {
	return k != KindUsername && k != KindNone
}

// NamesAccount reports whether the identifier value is an account name that
// can be matched against user handles. Stories carry the author's username.
func (k IdentifierKind) NamesAccount() bool {
	return k == KindUsername || k == KindStory
}

// Identifier is a value extracted from a URL plus its kind.
type Identifier struct {
	Kind  IdentifierKind `json:"kind"`
	Value string         `json:"value"`
}

// IsZero reports whether nothing was extracted.
func (id Identifier) IsZero() bool {
	return id.Kind == KindNone
}

// MarshalJSON encodes a zero identifier as null.
func (id Identifier) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	type plain Identifier
	return json.Marshal(plain(id))
}

// Resolution outcome values.
const (
	ResolutionSuccess = "success"
	ResolutionFailure = "failure"
)

// LinkResolution is the result of one resolver invocation. It is never persisted.
type LinkResolution struct {
	URL        string         `json:"url"`
	Platform   Platform       `json:"platform"`
	Identifier Identifier     `json:"identifier"`
	Video      *VideoRecord   `json:"video,omitempty"`
	Owner      *UserAggregate `json:"owner,omitempty"`
	Status     string         `json:"status"`
}

// VideoFound reports whether the URL matched a known video.
func (r *LinkResolution) VideoFound() bool {
	return r.Video != nil
}

// OwnerFound reports whether an owning user was resolved.
func (r *LinkResolution) OwnerFound() bool {
	return r.Owner != nil
}

// Account completeness values.
const (
	AccountsComplete = "Complete"
	AccountsPartial  = "Partial"
	AccountsInactive = "Inactive"
	AccountsNone     = "No accounts detected"
)

// ActivityMarker stands in for an account whose links only carried opaque
// content ids: the platform is known to be in use but no handle was seen.
const ActivityMarker = "(activity detected)"

// AccountReport lists the platform accounts detected for one user.
type AccountReport struct {
	DisplayName string `json:"displayName"`
	TotalVideos int64  `json:"totalVideos"`
	TotalViews  int64  `json:"totalViews"`

	Accounts map[Platform][]string      `json:"accounts"`
	Stats    map[Platform]PlatformStats `json:"stats"`

	// Synthesized lists platforms whose only account is a placeholder built
	// from the display name. They do not count as active.
	Synthesized []Platform `json:"synthesized,omitempty"`

	PlatformsActive     int    `json:"platformsActive"`
	PlatformsWithVideos int    `json:"platformsWithVideos"`
	Status              string `json:"status"`

	VideosScanned int `json:"videosScanned"`
	ValidURLs     int `json:"validUrls"`
}
