package analytics

import (
	"math"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Score component weights and caps.
const (
	engagementWeight  = 5.0
	engagementCap     = 50.0
	volumeWeight      = 3.0
	volumeCap         = 30.0
	consistencyWeight = 0.002
	consistencyCap    = 20.0
	maxScore          = 100.0
)

// PerformanceScore blends engagement, log-scaled reach and views per video into
// a 0-100 score rounded to 1 decimal. It is 0 when views or videos is zero.
//
//	engagement  = min(rate * 5, 50)
//	volume      = min(ln(1+views) * 3, 30)
//	consistency = min(views/videos * 0.002, 20)
func PerformanceScore(views, likes, comments, shares, videos int64, principal model.Platform) float64 {
	if views <= 0 || videos <= 0 {
		return 0
	}

	rate := EngagementRate(views, likes, comments, shares, principal)

	engagement := math.Min(rate*engagementWeight, engagementCap)
	volume := math.Min(math.Log1p(float64(views))*volumeWeight, volumeCap)
	consistency := math.Min(float64(views)/float64(videos)*consistencyWeight, consistencyCap)

	return math.Min(roundTo(engagement+volume+consistency, 1), maxScore)
}

// Performance categories.
const (
	CategoryElite        = "Elite"
	CategoryExpert       = "Expert"
	CategoryAdvanced     = "Advanced"
	CategoryIntermediate = "Intermediate"
	CategoryBeginner     = "Beginner"
	CategoryInactive     = "Inactive"
)

type categoryBand struct {
	min   float64
	name  string
	color string
}

// categoryBands is ordered from the highest lower bound down. Lower bounds are
// inclusive except for Beginner, which needs a strictly positive score.
var categoryBands = []categoryBand{
	{80, CategoryElite, "#ffd700"},
	{60, CategoryExpert, "#c0c0c0"},
	{40, CategoryAdvanced, "#cd7f32"},
	{20, CategoryIntermediate, "#4caf50"},
}

const (
	beginnerColor = "#ff9800"
	inactiveColor = "#6c757d"
)

// Category maps a performance score to its band name and display color.
func Category(score float64) (name, color string) {
	for _, b := range categoryBands {
		if score >= b.min {
			return b.name, b.color
		}
	}
	if score > 0 {
		return CategoryBeginner, beginnerColor
	}
	return CategoryInactive, inactiveColor
}

// CategoryNames lists every category from best to worst.
func CategoryNames() []string {
	return []string{
		CategoryElite, CategoryExpert, CategoryAdvanced,
		CategoryIntermediate, CategoryBeginner, CategoryInactive,
	}
}
