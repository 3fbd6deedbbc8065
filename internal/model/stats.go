package model

import "time"

// PopulationStats are the quantiles of the active population (users with
// views > 0) that the status, consistency and growth labels are relative to.
type PopulationStats struct {
	ActiveUsers      int     `json:"activeUsers"`
	MedianViews      float64 `json:"medianViews"`
	P75Views         float64 `json:"p75Views"`
	MedianEngagement float64 `json:"medianEngagement"`
	P75Engagement    float64 `json:"p75Engagement"`
	MeanEngagement   float64 `json:"meanEngagement"`
	MedianVideoCount float64 `json:"medianVideoCount"`
}

// Summary is the dashboard overview computed from a snapshot.
type Summary struct {
	TotalUsers     int            `json:"totalUsers"`
	ActiveUsers    int            `json:"activeUsers"`
	InactiveUsers  int            `json:"inactiveUsers"`
	TotalVideos    int64          `json:"totalVideos"`
	TotalViews     int64          `json:"totalViews"`
	AvgEngagement  float64        `json:"avgEngagement"`
	StatusCounts   map[string]int `json:"statusCounts"`
	CategoryCounts map[string]int `json:"categoryCounts"`
	VideoRecords   int            `json:"videoRecords"`
	VideosWithLink int            `json:"videosWithLink"`
	LinkShare      float64        `json:"linkShare"`
	Fingerprint    string         `json:"fingerprint"`
	ComputedAt     time.Time      `json:"computedAt"`
}

// UserProfile is a single user plus generated insights.
type UserProfile struct {
	User            UserAggregate `json:"user"`
	Insights        []string      `json:"insights"`
	Recommendations []string      `json:"recommendations"`
}

// VideoPage is one page of a filtered, sorted video listing.
type VideoPage struct {
	Items    []VideoRecord `json:"items"`
	Total    int           `json:"total"`
	Filtered int           `json:"filtered"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Pages    int           `json:"pages"`
}
