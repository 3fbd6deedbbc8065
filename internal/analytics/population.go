package analytics

import (
	"sort"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Activity status labels.
const (
	StatusInactive       = "Inactive"
	StatusVeryActive     = "Very Active"
	StatusActive         = "Active"
	StatusSomewhatActive = "Somewhat Active"
)

// Consistency and growth-potential labels.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
	LevelNoData = "No data"
)

// StatusNames lists the activity statuses from most to least active.
func StatusNames() []string {
	return []string{StatusVeryActive, StatusActive, StatusSomewhatActive, StatusInactive}
}

// Population computes the statistics of the active population (users with
// views > 0). It reads TotalViews, TotalVideos and Derived.EngagementRate, so
// the per-row pass must have run first. An empty active population yields
// zero statistics.
func Population(users []model.UserAggregate) model.PopulationStats {
	var views, engagement, videos []float64
	for i := range users {
		u := &users[i]
		if !u.Active() {
			continue
		}
		views = append(views, float64(u.TotalViews))
		engagement = append(engagement, u.Derived.EngagementRate)
		videos = append(videos, float64(u.TotalVideos))
	}

	stats := model.PopulationStats{ActiveUsers: len(views)}
	if len(views) == 0 {
		return stats
	}

	sort.Float64s(views)
	sort.Float64s(engagement)
	sort.Float64s(videos)

	stats.MedianViews = quantile(views, 0.5)
	stats.P75Views = quantile(views, 0.75)
	stats.MedianEngagement = quantile(engagement, 0.5)
	stats.P75Engagement = quantile(engagement, 0.75)
	stats.MeanEngagement = mean(engagement)
	stats.MedianVideoCount = quantile(videos, 0.5)
	return stats
}

// quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks (position q*(n-1)).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := q * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// ActivityStatus classifies views against the population quantiles.
func ActivityStatus(views int64, stats model.PopulationStats) string {
	v := float64(views)
	switch {
	case views <= 0:
		return StatusInactive
	case v >= stats.P75Views:
		return StatusVeryActive
	case v >= stats.MedianViews:
		return StatusActive
	default:
		return StatusSomewhatActive
	}
}

// Consistency labels how reliably a user engages across their catalogue.
// Five videos or fewer is not enough to call it High.
func Consistency(videos int64, rate float64, stats model.PopulationStats) string {
	switch {
	case videos <= 0:
		return LevelNoData
	case videos <= 5:
		return LevelLow
	case rate > stats.MedianEngagement:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// GrowthPotential is High for users who engage above the 75th percentile with
// fewer videos than the median creator.
func GrowthPotential(views, videos int64, rate float64, stats model.PopulationStats) string {
	switch {
	case views <= 0:
		return LevelNoData
	case rate > stats.P75Engagement && float64(videos) < stats.MedianVideoCount:
		return LevelHigh
	case rate > stats.MedianEngagement:
		return LevelMedium
	default:
		return LevelLow
	}
}
