package analytics

import (
	"strings"
	"testing"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

func contains(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestInsights_Inactive(t *testing.T) {
	u := model.UserAggregate{DisplayName: "idle"}
	insights, recs := Insights(&u, model.PopulationStats{ActiveUsers: 10})

	if len(insights) != 1 || !contains(insights, "Inactive") {
		t.Errorf("insights = %v, want the single inactive insight", insights)
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want 2", len(recs))
	}
}

func TestInsights_TopPerformer(t *testing.T) {
	u := model.UserAggregate{
		DisplayName: "star",
		TotalViews:  10_000,
		TotalVideos: 150,
		TikTok:      model.PlatformStats{Views: 6000},
		YouTube:     model.PlatformStats{Views: 4000},
		Derived: model.UserDerived{
			EngagementRate: 9,
			RankViews:      1,
			RankScore:      1,
		},
	}
	stats := model.PopulationStats{ActiveUsers: 20, MeanEngagement: 4}
	insights, recs := Insights(&u, stats)

	for _, want := range []string{"Top 10% by views", "top 10% overall", "double the average", "large catalogue", "2 platforms"} {
		if !contains(insights, want) {
			t.Errorf("insights %v missing %q", insights, want)
		}
	}
	if contains(recs, "Focus on quality") {
		t.Errorf("quality recommendation given to an above-average creator: %v", recs)
	}
}

func TestInsights_SinglePlatformBelowAverage(t *testing.T) {
	u := model.UserAggregate{
		DisplayName: "newbie",
		TotalViews:  100,
		TotalVideos: 4,
		Instagram:   model.PlatformStats{Views: 100},
		Derived: model.UserDerived{
			EngagementRate: 1,
			RankViews:      8,
			RankScore:      9,
		},
	}
	stats := model.PopulationStats{ActiveUsers: 10, MeanEngagement: 3}
	insights, recs := Insights(&u, stats)

	if contains(insights, "Top") {
		t.Errorf("unexpected top insight: %v", insights)
	}
	if !contains(insights, "Room to improve engagement") || !contains(insights, "more content") {
		t.Errorf("insights = %v", insights)
	}
	if !contains(recs, "beyond Instagram") {
		t.Errorf("recommendations %v missing diversification hint", recs)
	}
}

func TestSummarize(t *testing.T) {
	users := testUsers()
	stats := AnnotateUsers(users)

	long := "https://www.youtube.com/watch?v=abc123XYZ_-"
	videos := []model.VideoRecord{{ID: 1, URL: &long}, {ID: 2}}
	AnnotateVideos(videos)

	s := Summarize(users, videos, stats)

	if s.TotalUsers != 5 || s.ActiveUsers != 4 || s.InactiveUsers != 1 {
		t.Errorf("user counts = (%d, %d, %d), want (5, 4, 1)", s.TotalUsers, s.ActiveUsers, s.InactiveUsers)
	}
	if s.TotalViews != 1000 || s.TotalVideos != 23 {
		t.Errorf("totals = (%d views, %d videos), want (1000, 23)", s.TotalViews, s.TotalVideos)
	}
	if s.StatusCounts[StatusSomewhatActive] != 2 || s.StatusCounts[StatusInactive] != 1 {
		t.Errorf("status counts = %v", s.StatusCounts)
	}
	if s.CategoryCounts[CategoryInactive] != 1 {
		t.Errorf("category counts = %v", s.CategoryCounts)
	}
	if s.VideosWithLink != 1 || s.LinkShare != 50 {
		t.Errorf("links = (%d, %.1f%%), want (1, 50%%)", s.VideosWithLink, s.LinkShare)
	}
	if s.AvgEngagement != 8.5 {
		t.Errorf("AvgEngagement = %.2f, want 8.5", s.AvgEngagement)
	}
}
