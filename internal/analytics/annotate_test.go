package analytics

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/goccy/go-json"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

func testUsers() []model.UserAggregate {
	return []model.UserAggregate{
		{
			UserID: "1", DisplayName: "alice",
			TotalVideos: 10, TotalViews: 400, TotalLikes: 40, TotalComments: 4, TotalShares: 4,
			TikTok:  model.PlatformStats{Views: 300, Videos: 6},
			YouTube: model.PlatformStats{Views: 100, Videos: 4},
		},
		{
			UserID: "2", DisplayName: "bob",
			TotalVideos: 2, TotalViews: 300, TotalLikes: 60, TotalComments: 0, TotalShares: 0,
			Instagram: model.PlatformStats{Views: 300, Videos: 2},
		},
		{
			UserID: "3", DisplayName: "carol",
			TotalVideos: 8, TotalViews: 200, TotalLikes: 2, TotalComments: 0, TotalShares: 0,
			YouTube: model.PlatformStats{Views: 200, Videos: 8},
		},
		{
			UserID: "4", DisplayName: "dave",
			TotalVideos: 3, TotalViews: 100, TotalLikes: 1, TotalComments: 0, TotalShares: 0,
			TikTok: model.PlatformStats{Views: 100, Videos: 3},
		},
		{UserID: "5", DisplayName: "erin"},
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		if got := quantile(sorted, tt.q); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("quantile(%v, %.2f) = %.4f, want %.4f", sorted, tt.q, got, tt.want)
		}
	}
	if got := quantile(nil, 0.5); got != 0 {
		t.Errorf("quantile(nil) = %.2f, want 0", got)
	}
}

func TestAnnotateUsers_Population(t *testing.T) {
	users := testUsers()
	stats := AnnotateUsers(users)

	if stats.ActiveUsers != 4 {
		t.Fatalf("ActiveUsers = %d, want 4", stats.ActiveUsers)
	}
	// views 100,200,300,400
	if !almostEqual(stats.MedianViews, 250, 1e-9) {
		t.Errorf("MedianViews = %.2f, want 250", stats.MedianViews)
	}
	if !almostEqual(stats.P75Views, 325, 1e-9) {
		t.Errorf("P75Views = %.2f, want 325", stats.P75Views)
	}
	// videos 2,3,8,10
	if !almostEqual(stats.MedianVideoCount, 5.5, 1e-9) {
		t.Errorf("MedianVideoCount = %.2f, want 5.5", stats.MedianVideoCount)
	}
}

func TestAnnotateUsers_Labels(t *testing.T) {
	users := testUsers()
	AnnotateUsers(users)

	want := []struct {
		status, consistency, growth string
	}{
		// alice: 400 views, rate 12, 10 videos
		{StatusVeryActive, LevelHigh, LevelMedium},
		// bob: 300 views, rate 20, 2 videos
		{StatusActive, LevelLow, LevelHigh},
		// carol: 200 views, youtube rate 1, 8 videos
		{StatusSomewhatActive, LevelMedium, LevelLow},
		// dave: 100 views, rate 1, 3 videos
		{StatusSomewhatActive, LevelLow, LevelLow},
		{StatusInactive, LevelNoData, LevelNoData},
	}

	for i, w := range want {
		d := users[i].Derived
		if d.ActivityStatus != w.status {
			t.Errorf("%s: ActivityStatus = %q, want %q", users[i].DisplayName, d.ActivityStatus, w.status)
		}
		if d.Consistency != w.consistency {
			t.Errorf("%s: Consistency = %q, want %q", users[i].DisplayName, d.Consistency, w.consistency)
		}
		if d.GrowthPotential != w.growth {
			t.Errorf("%s: GrowthPotential = %q, want %q", users[i].DisplayName, d.GrowthPotential, w.growth)
		}
	}
}

func TestAnnotateUsers_Ranks(t *testing.T) {
	users := testUsers()
	AnnotateUsers(users)

	wantViews := []int{1, 2, 3, 4, 0}
	for i, w := range wantViews {
		if got := users[i].Derived.RankViews; got != w {
			t.Errorf("%s: RankViews = %d, want %d", users[i].DisplayName, got, w)
		}
	}

	erin := users[4].Derived
	if erin.RankLikes != 0 || erin.RankEngagement != 0 || erin.RankScore != 0 {
		t.Errorf("inactive user ranked: %+v", erin)
	}
	if erin.Category != CategoryInactive {
		t.Errorf("inactive category = %q, want %q", erin.Category, CategoryInactive)
	}
	if erin.PrincipalPlatform != model.PlatformNone {
		t.Errorf("inactive principal platform = %q, want none", erin.PrincipalPlatform)
	}
}

func TestAnnotateUsers_Averages(t *testing.T) {
	users := []model.UserAggregate{
		{DisplayName: "a", TotalVideos: 3, TotalViews: 1000, TotalLikes: 10, TotalComments: 10},
		{DisplayName: "b", TotalVideos: 0, TotalViews: 0, TotalLikes: 7, TotalComments: 3},
	}
	AnnotateUsers(users)

	a := users[0].Derived
	if a.AvgViewsPerVideo != 333 {
		t.Errorf("AvgViewsPerVideo = %.2f, want 333", a.AvgViewsPerVideo)
	}
	if a.AvgLikesPerVideo != 3 {
		t.Errorf("AvgLikesPerVideo = %.2f, want 3", a.AvgLikesPerVideo)
	}
	if a.AvgCommentsPerVideo != 3.33 {
		t.Errorf("AvgCommentsPerVideo = %.2f, want 3.33", a.AvgCommentsPerVideo)
	}
	if a.TotalInteractions != 20 {
		t.Errorf("TotalInteractions = %d, want 20", a.TotalInteractions)
	}

	// zero videos divides by one
	b := users[1].Derived
	if b.AvgLikesPerVideo != 7 || b.AvgCommentsPerVideo != 3 {
		t.Errorf("zero-video averages = (%.2f, %.2f), want (7, 3)", b.AvgLikesPerVideo, b.AvgCommentsPerVideo)
	}
}

func TestAnnotateUsers_Idempotent(t *testing.T) {
	first := testUsers()
	AnnotateUsers(first)
	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	second := testUsers()
	AnnotateUsers(second)
	AnnotateUsers(second)
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Errorf("annotating twice changed the output")
	}
}

func TestAnnotateUsers_LargeTableMatchesSerial(t *testing.T) {
	users := make([]model.UserAggregate, 5000)
	for i := range users {
		views := int64(i * 37 % 9973)
		users[i] = model.UserAggregate{
			DisplayName: fmt.Sprintf("user%d", i),
			TotalVideos: int64(i % 40),
			TotalViews:  views,
			TotalLikes:  views / 9,
			TikTok:      model.PlatformStats{Views: views},
		}
	}
	AnnotateUsers(users)

	for i := range users {
		u := users[i]
		wantScore := PerformanceScore(u.TotalViews, u.TotalLikes, 0, 0, u.TotalVideos, u.Derived.PrincipalPlatform)
		if u.Derived.PerformanceScore != wantScore {
			t.Fatalf("row %d: score = %.1f, want %.1f", i, u.Derived.PerformanceScore, wantScore)
		}
	}
}

func TestAnnotateUsers_HugeCountersStayNonNegative(t *testing.T) {
	huge := int64(9e18)
	users := []model.UserAggregate{{
		DisplayName: "whale", TotalVideos: 1, TotalViews: 1000,
		TotalLikes: huge, TotalComments: huge,
		TikTok: model.PlatformStats{Views: 1000, Videos: 1},
	}}
	AnnotateUsers(users)

	d := users[0].Derived
	if d.EngagementRate <= 0 || d.PerformanceScore < 0 || d.PerformanceScore > 100 {
		t.Errorf("rate = %v, score = %v, want rate > 0 and score in [0, 100]", d.EngagementRate, d.PerformanceScore)
	}
	if d.TotalInteractions < 0 {
		t.Errorf("TotalInteractions = %d, want >= 0", d.TotalInteractions)
	}
	if d.Category == CategoryInactive {
		t.Errorf("Category = %s, want an active band", d.Category)
	}
}

func TestAnnotateVideos(t *testing.T) {
	url := "https://www.tiktok.com/@alice/video/123456789"
	short := "https://x"
	videos := []model.VideoRecord{
		{ID: 1, URL: &url, Platform: "TikTok", Views: 100, Likes: 2, Comments: 0, Shares: 0},
		{ID: 2, URL: &short, Platform: "youtube", Views: 100, Likes: 5, Comments: 5, Shares: 90},
		{ID: 3, Platform: "", Views: 0, Likes: 3},
	}
	AnnotateVideos(videos)

	v := videos[0].Derived
	if v.EngagementRate != 2 || v.Score != 3.05 || v.Category != VideoRegular || !v.HasLink {
		t.Errorf("video 1 derived = %+v", v)
	}
	v = videos[1].Derived
	if v.EngagementRate != 10 || v.Category != VideoVeryGood || v.HasLink {
		t.Errorf("video 2 derived = %+v", v)
	}
	if v.Interactions != 100 {
		t.Errorf("video 2 interactions = %d, want 100", v.Interactions)
	}
	v = videos[2].Derived
	if v.EngagementRate != 0 || v.Score != 0 || v.Category != VideoLow || v.HasLink {
		t.Errorf("video 3 derived = %+v", v)
	}
}

func TestVideoCategory(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, VideoLow},
		{1, VideoLow},
		{1.01, VideoRegular},
		{3, VideoRegular},
		{6, VideoGood},
		{10, VideoVeryGood},
		{10.5, VideoExceptional},
		{100, VideoExceptional},
		{150, VideoUncategorized},
	}
	for _, tt := range tests {
		if got := VideoCategory(tt.rate); got != tt.want {
			t.Errorf("VideoCategory(%.2f) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}
