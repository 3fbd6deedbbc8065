package model

import "time"

// PlatformStats holds the per-platform split of a user's counters.
type PlatformStats struct {
	Views  int64 `json:"views"`
	Videos int64 `json:"videos"`
}

// UserAggregate is one row of the per-account aggregate table plus every
// field the analytics engine derives from it.
type UserAggregate struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`

	TotalVideos   int64 `json:"totalVideos"`
	TotalViews    int64 `json:"totalViews"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	TotalShares   int64 `json:"totalShares"`

	TikTok    PlatformStats `json:"tiktok"`
	YouTube   PlatformStats `json:"youtube"`
	Instagram PlatformStats `json:"instagram"`

	// Handles holds platform usernames when the source table carries them.
	Handles map[Platform]string `json:"handles,omitempty"`

	Derived UserDerived `json:"derived"`
}

// UserDerived is recomputed wholesale on every reload.
type UserDerived struct {
	TotalInteractions   int64    `json:"totalInteractions"`
	PrincipalPlatform   Platform `json:"principalPlatform"`
	EngagementRate      float64  `json:"engagementRate"`
	PerformanceScore    float64  `json:"performanceScore"`
	Category            string   `json:"category"`
	CategoryColor       string   `json:"categoryColor"`
	AvgViewsPerVideo    float64  `json:"avgViewsPerVideo"`
	AvgLikesPerVideo    float64  `json:"avgLikesPerVideo"`
	AvgCommentsPerVideo float64  `json:"avgCommentsPerVideo"`
	RankViews           int      `json:"rankViews"`
	RankLikes           int      `json:"rankLikes"`
	RankEngagement      int      `json:"rankEngagement"`
	RankScore           int      `json:"rankScore"`
	Consistency         string   `json:"consistency"`
	ActivityStatus      string   `json:"activityStatus"`
	GrowthPotential     string   `json:"growthPotential"`
}

// Stats returns the platform split for p.
func (u *UserAggregate) Stats(p Platform) PlatformStats {
	switch p {
	case PlatformTikTok:
		return u.TikTok
	case PlatformYouTube:
		return u.YouTube
	case PlatformInstagram:
		return u.Instagram
	default:
		return PlatformStats{}
	}
}

// Active reports whether the user has any recorded views.
func (u *UserAggregate) Active() bool {
	return u.TotalViews > 0
}
