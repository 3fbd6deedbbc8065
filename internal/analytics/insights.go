package analytics

import (
	"fmt"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Insights builds the narrative observations and recommendations shown on a
// user's profile. Positions are relative to the active population described
// by stats.
func Insights(u *model.UserAggregate, stats model.PopulationStats) (insights, recommendations []string) {
	if !u.Active() {
		return []string{"Inactive user: no views recorded"},
			[]string{
				"Start publishing content on the available platforms",
				"Set up a consistent posting routine",
			}
	}

	active := float64(stats.ActiveUsers)
	d := u.Derived

	switch {
	case d.RankViews > 0 && float64(d.RankViews) <= active*0.1:
		insights = append(insights, "Top 10% by views")
	case d.RankViews > 0 && float64(d.RankViews) <= active*0.25:
		insights = append(insights, "Top 25% by views")
	}
	if d.RankScore > 0 && float64(d.RankScore) <= active*0.1 {
		insights = append(insights, "Exceptional performance: top 10% overall")
	}

	avg := stats.MeanEngagement
	switch {
	case d.EngagementRate > avg*2:
		insights = append(insights, "Engagement rate is double the average")
		recommendations = append(recommendations, "Post more often to maximize reach")
	case d.EngagementRate > avg:
		insights = append(insights, "Engagement rate above average")
		recommendations = append(recommendations, "Study your best videos and repeat what worked")
	default:
		insights = append(insights, "Room to improve engagement")
		recommendations = append(recommendations, "Use more calls to action and reply to comments")
	}

	switch {
	case u.TotalVideos > 100:
		insights = append(insights, "Very active creator with a large catalogue")
		if d.EngagementRate < avg {
			recommendations = append(recommendations, "Focus on quality: fewer posts, more care in production")
		}
	case u.TotalVideos < 20:
		insights = append(insights, "Room to grow with more content")
		recommendations = append(recommendations, "Set up a consistent posting routine")
	}

	var platforms []model.Platform
	for _, p := range model.Platforms {
		if u.Stats(p).Views > 0 {
			platforms = append(platforms, p)
		}
	}
	switch {
	case len(platforms) == 1:
		recommendations = append(recommendations,
			fmt.Sprintf("Consider expanding beyond %s to diversify", platforms[0].Title()))
	case len(platforms) >= 2:
		insights = append(insights,
			fmt.Sprintf("Well diversified: active on %d platforms", len(platforms)))
	}

	return insights, recommendations
}
