// Package analytics derives engagement, scoring, ranking and population-relative
// labels from the raw per-user and per-video counters. Every function is pure.
package analytics

import (
	"math"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// EngagementRate returns the percentage of views that produced an interaction,
// using the formula of platform p. YouTube does not count shares; every other
// platform, known or not, counts likes, comments and shares.
// The result is rounded to 2 decimals and is 0 when views is not positive.
func EngagementRate(views, likes, comments, shares int64, p model.Platform) float64 {
	if views <= 0 {
		return 0
	}

	// Summed as floats so counters near MaxInt64 cannot wrap negative.
	var interactions float64
	switch p {
	case model.PlatformYouTube:
		interactions = float64(likes) + float64(comments)
	default:
		// TikTok and Instagram share the generic formula. Instagram reach is
		// approximated by views.
		interactions = float64(likes) + float64(comments) + float64(shares)
	}

	return roundTo(interactions/float64(views)*100, 2)
}

// Interactions returns likes+comments+shares, saturating at math.MaxInt64.
// Counters are expected to be non-negative.
func Interactions(likes, comments, shares int64) int64 {
	var sum int64
	for _, n := range [...]int64{likes, comments, shares} {
		if n <= 0 {
			continue
		}
		if sum > math.MaxInt64-n {
			return math.MaxInt64
		}
		sum += n
	}
	return sum
}

// PrincipalPlatform returns the platform with the most views, or PlatformNone
// when all three are zero. Ties go to the first platform in model.Platforms.
func PrincipalPlatform(tiktok, youtube, instagram int64) model.Platform {
	views := [...]int64{tiktok, youtube, instagram}

	best := model.PlatformNone
	var top int64
	for i, p := range model.Platforms {
		if views[i] > top {
			top = views[i]
			best = p
		}
	}
	return best
}

// roundTo rounds x half away from zero to the given number of decimals.
// Non-finite input collapses to 0.
func roundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
