package model

// VideoRecord is one published video and its derived analytics.
type VideoRecord struct {
	ID       int64   `json:"id"`
	Owner    *string `json:"owner,omitempty"`
	URL      *string `json:"url,omitempty"`
	Platform string  `json:"platform,omitempty"`
	Views    int64   `json:"views"`
	Likes    int64   `json:"likes"`
	Comments int64   `json:"comments"`
	Shares   int64   `json:"shares"`

	Derived VideoDerived `json:"derived"`
}

// VideoDerived holds the per-video fields computed on reload.
type VideoDerived struct {
	Interactions   int64   `json:"interactions"`
	EngagementRate float64 `json:"engagementRate"`
	Score          float64 `json:"score"`
	Category       string  `json:"category"`
	HasLink        bool    `json:"hasLink"`
}

// OwnerName returns the owning display name, or "" for unattached videos.
func (v *VideoRecord) OwnerName() string {
	if v.Owner == nil {
		return ""
	}
	return *v.Owner
}

// Link returns the stored URL, or "" when absent.
func (v *VideoRecord) Link() string {
	if v.URL == nil {
		return ""
	}
	return *v.URL
}
