package analytics

import (
	"math"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Video engagement categories.
const (
	VideoLow           = "Low"
	VideoRegular       = "Regular"
	VideoGood          = "Good"
	VideoVeryGood      = "Very Good"
	VideoExceptional   = "Exceptional"
	VideoUncategorized = "Uncategorized"
)

// videoBins are the upper bounds of each category; the first bin also
// includes its lower bound of 0.
var videoBins = []struct {
	max  float64
	name string
}{
	{1, VideoLow},
	{3, VideoRegular},
	{6, VideoGood},
	{10, VideoVeryGood},
	{100, VideoExceptional},
}

// minLinkLength is the shortest URL considered usable.
const minLinkLength = 10

// VideoScore weights engagement at 60% and log-scaled views at 40%.
func VideoScore(rate float64, views int64) float64 {
	if views < 0 {
		views = 0
	}
	return roundTo(rate*0.6+math.Log1p(float64(views))*0.4, 2)
}

// VideoCategory buckets an engagement rate into the fixed bins
// [0,1] (1,3] (3,6] (6,10] (10,100]. Rates outside [0,100] are Uncategorized.
func VideoCategory(rate float64) string {
	if rate < 0 {
		return VideoUncategorized
	}
	for _, b := range videoBins {
		if rate <= b.max {
			return b.name
		}
	}
	return VideoUncategorized
}

// HasLink reports whether url is long enough to be a usable link.
func HasLink(url string) bool {
	return len(url) > minLinkLength
}

// AnnotateVideo fills v.Derived from its own counters. The engagement formula
// follows the video's platform label; unknown labels use the generic formula.
func AnnotateVideo(v *model.VideoRecord) {
	p := model.ParsePlatform(v.Platform)
	rate := EngagementRate(v.Views, v.Likes, v.Comments, v.Shares, p)

	v.Derived = model.VideoDerived{
		Interactions:   Interactions(v.Likes, v.Comments, v.Shares),
		EngagementRate: rate,
		Score:          VideoScore(rate, v.Views),
		Category:       VideoCategory(rate),
		HasLink:        HasLink(v.Link()),
	}
}
