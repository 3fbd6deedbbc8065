package analytics

import (
	"testing"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name      string
		views     int64
		likes     int64
		comments  int64
		shares    int64
		videos    int64
		principal model.Platform
		want      float64
	}{
		// 50 (capped) + ln(1001)*3 + 100*0.002 = 70.93
		{"tiktok capped engagement", 1000, 50, 30, 20, 10, model.PlatformTikTok, 70.9},
		// 8*5 + 20.73 + 0.2
		{"youtube formula", 1000, 50, 30, 20, 10, model.PlatformYouTube, 60.9},
		// 0 + ln(51)*3 + 10*0.002 = 11.82
		{"no interactions", 50, 0, 0, 0, 5, model.PlatformInstagram, 11.8},
		{"zero views", 0, 50, 30, 20, 10, model.PlatformTikTok, 0},
		{"zero videos", 1000, 50, 30, 20, 0, model.PlatformTikTok, 0},
		{"every component capped", 1_000_000_000_000, 1_000_000_000_000, 0, 0, 1, model.PlatformNone, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerformanceScore(tt.views, tt.likes, tt.comments, tt.shares, tt.videos, tt.principal)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("PerformanceScore() = %.2f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestPerformanceScore_Bounds(t *testing.T) {
	for views := int64(0); views < 5_000_000; views = views*3 + 1 {
		for videos := int64(0); videos < 500; videos = videos*2 + 1 {
			got := PerformanceScore(views, views, views/2, views/4, videos, model.PlatformTikTok)
			if got < 0 || got > 100 {
				t.Fatalf("PerformanceScore(views=%d, videos=%d) = %.2f, want [0, 100]", views, videos, got)
			}
		}
	}
}

func TestPerformanceScore_HugeCounters(t *testing.T) {
	huge := int64(9e18)
	got := PerformanceScore(1000, huge, huge, huge, 1, model.PlatformTikTok)
	if got < 0 || got > 100 {
		t.Fatalf("PerformanceScore(huge counters) = %.2f, want [0, 100]", got)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		score     float64
		wantName  string
		wantColor string
	}{
		{100, CategoryElite, "#ffd700"},
		{80, CategoryElite, "#ffd700"},
		{79.9, CategoryExpert, "#c0c0c0"},
		{60, CategoryExpert, "#c0c0c0"},
		{59.9, CategoryAdvanced, "#cd7f32"},
		{40, CategoryAdvanced, "#cd7f32"},
		{39.9, CategoryIntermediate, "#4caf50"},
		{20, CategoryIntermediate, "#4caf50"},
		{19.9, CategoryBeginner, "#ff9800"},
		{0.1, CategoryBeginner, "#ff9800"},
		{0, CategoryInactive, "#6c757d"},
	}

	for _, tt := range tests {
		name, color := Category(tt.score)
		if name != tt.wantName || color != tt.wantColor {
			t.Errorf("Category(%.1f) = (%s, %s), want (%s, %s)", tt.score, name, color, tt.wantName, tt.wantColor)
		}
	}
}

func TestCategory_Total(t *testing.T) {
	valid := make(map[string]bool)
	for _, n := range CategoryNames() {
		valid[n] = true
	}
	for s := 0.0; s <= 100; s += 0.1 {
		name, _ := Category(s)
		if !valid[name] {
			t.Fatalf("Category(%.1f) = %q, not a known category", s, name)
		}
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"ties share min rank and zero is unranked", []float64{10, 10, 5, 0}, []int{1, 1, 3, 0}},
		{"unsorted input", []float64{3, 1, 2}, []int{1, 3, 2}},
		{"negative excluded", []float64{-1, 4, 4, 4}, []int{0, 1, 1, 1}},
		{"all zero", []float64{0, 0}, []int{0, 0}},
		{"empty", nil, []int{}},
		{"tie in the middle", []float64{9, 7, 7, 1}, []int{1, 2, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("Rank(%v) returned %d ranks, want %d", tt.values, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Rank(%v) = %v, want %v", tt.values, got, tt.want)
					break
				}
			}
		})
	}
}
