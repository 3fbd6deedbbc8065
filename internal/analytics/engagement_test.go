package analytics

import (
	"math"
	"testing"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		views    int64
		likes    int64
		comments int64
		shares   int64
		platform model.Platform
		want     float64
	}{
		{"tiktok counts shares", 1000, 50, 30, 20, model.PlatformTikTok, 10},
		{"youtube ignores shares", 1000, 50, 30, 20, model.PlatformYouTube, 8},
		{"instagram counts shares", 1000, 50, 30, 20, model.PlatformInstagram, 10},
		{"unknown platform uses generic formula", 1000, 50, 30, 20, model.PlatformNone, 10},
		{"rounded to 2 decimals", 3, 1, 0, 0, model.PlatformTikTok, 33.33},
		{"zero views tiktok", 0, 50, 30, 20, model.PlatformTikTok, 0},
		{"zero views youtube", 0, 50, 30, 20, model.PlatformYouTube, 0},
		{"zero views unknown", 0, 5, 0, 0, model.PlatformNone, 0},
		{"interactions above views", 10, 20, 0, 0, model.PlatformInstagram, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EngagementRate(tt.views, tt.likes, tt.comments, tt.shares, tt.platform)
			if got != tt.want {
				t.Errorf("EngagementRate(%d, %d, %d, %d, %s) = %.2f, want %.2f",
					tt.views, tt.likes, tt.comments, tt.shares, tt.platform, got, tt.want)
			}
		})
	}
}

func TestEngagementRate_NonNegative(t *testing.T) {
	for _, p := range append([]model.Platform{model.PlatformNone}, model.Platforms...) {
		for views := int64(1); views < 2000; views += 137 {
			got := EngagementRate(views, views/3, views/7, views/11, p)
			if got < 0 || math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("EngagementRate(%d, ..., %s) = %v, want finite >= 0", views, p, got)
			}
		}
	}
}

func TestEngagementRate_HugeCounters(t *testing.T) {
	huge := int64(9e18)
	for _, p := range append([]model.Platform{model.PlatformNone}, model.Platforms...) {
		got := EngagementRate(1000, huge, huge, math.MaxInt64, p)
		if got <= 0 || math.IsInf(got, 0) {
			t.Errorf("EngagementRate(huge counters, %s) = %v, want finite > 0", p, got)
		}
	}
}

func TestInteractions(t *testing.T) {
	tests := []struct {
		name                    string
		likes, comments, shares int64
		want                    int64
	}{
		{"plain sum", 10, 5, 2, 17},
		{"negative ignored", 10, -5, 2, 12},
		{"saturates", 9e18, 9e18, 1, math.MaxInt64},
		{"max plus zero", math.MaxInt64, 0, 0, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interactions(tt.likes, tt.comments, tt.shares); got != tt.want {
				t.Errorf("Interactions(%d, %d, %d) = %d, want %d",
					tt.likes, tt.comments, tt.shares, got, tt.want)
			}
		})
	}
}

func TestPrincipalPlatform(t *testing.T) {
	tests := []struct {
		name                       string
		tiktok, youtube, instagram int64
		want                       model.Platform
	}{
		{"all zero", 0, 0, 0, model.PlatformNone},
		{"tiktok wins", 30, 20, 10, model.PlatformTikTok},
		{"youtube wins", 10, 30, 20, model.PlatformYouTube},
		{"instagram wins", 10, 20, 30, model.PlatformInstagram},
		{"tie goes to tiktok", 50, 50, 10, model.PlatformTikTok},
		{"tie youtube over instagram", 0, 40, 40, model.PlatformYouTube},
		{"three-way tie", 7, 7, 7, model.PlatformTikTok},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrincipalPlatform(tt.tiktok, tt.youtube, tt.instagram)
			if got != tt.want {
				t.Errorf("PrincipalPlatform(%d, %d, %d) = %s, want %s",
					tt.tiktok, tt.youtube, tt.instagram, got, tt.want)
			}
		})
	}
}

func TestPrincipalPlatform_NoneString(t *testing.T) {
	if got := PrincipalPlatform(0, 0, 0).String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
}
