package analytics

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Jeanads/trendx-analytics/internal/model"
)

// minChunk keeps small tables on a single goroutine.
const minChunk = 512

// AnnotateUsers recomputes every derived field of users in place and returns
// the population statistics the labels were assigned against.
//
// It runs in two phases. The first pass derives each row from its own
// counters and may run in parallel. The population statistics and ranks are
// then computed once, and the second pass assigns the population-relative
// labels from those statistics alone.
func AnnotateUsers(users []model.UserAggregate) model.PopulationStats {
	forEachChunk(len(users), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			annotateRow(&users[i])
		}
	})

	stats := Population(users)
	assignRanks(users)

	forEachChunk(len(users), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			labelRow(&users[i], stats)
		}
	})

	return stats
}

// AnnotateVideos fills the derived fields of every video in place.
func AnnotateVideos(videos []model.VideoRecord) {
	forEachChunk(len(videos), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			AnnotateVideo(&videos[i])
		}
	})
}

func annotateRow(u *model.UserAggregate) {
	principal := PrincipalPlatform(u.TikTok.Views, u.YouTube.Views, u.Instagram.Views)
	rate := EngagementRate(u.TotalViews, u.TotalLikes, u.TotalComments, u.TotalShares, principal)
	score := PerformanceScore(u.TotalViews, u.TotalLikes, u.TotalComments, u.TotalShares, u.TotalVideos, principal)
	category, color := Category(score)

	// Averages divide by at least one video.
	perVideo := float64(u.TotalVideos)
	if perVideo < 1 {
		perVideo = 1
	}

	u.Derived = model.UserDerived{
		TotalInteractions:   Interactions(u.TotalLikes, u.TotalComments, u.TotalShares),
		PrincipalPlatform:   principal,
		EngagementRate:      rate,
		PerformanceScore:    score,
		Category:            category,
		CategoryColor:       color,
		AvgViewsPerVideo:    roundTo(float64(u.TotalViews)/perVideo, 0),
		AvgLikesPerVideo:    roundTo(float64(u.TotalLikes)/perVideo, 0),
		AvgCommentsPerVideo: roundTo(float64(u.TotalComments)/perVideo, 2),
	}
}

func labelRow(u *model.UserAggregate, stats model.PopulationStats) {
	rate := u.Derived.EngagementRate
	u.Derived.ActivityStatus = ActivityStatus(u.TotalViews, stats)
	u.Derived.Consistency = Consistency(u.TotalVideos, rate, stats)
	u.Derived.GrowthPotential = GrowthPotential(u.TotalViews, u.TotalVideos, rate, stats)
}

func assignRanks(users []model.UserAggregate) {
	n := len(users)
	views := make([]float64, n)
	likes := make([]float64, n)
	engagement := make([]float64, n)
	score := make([]float64, n)
	for i := range users {
		views[i] = float64(users[i].TotalViews)
		likes[i] = float64(users[i].TotalLikes)
		engagement[i] = users[i].Derived.EngagementRate
		score[i] = users[i].Derived.PerformanceScore
	}

	rv, rl, re, rs := Rank(views), Rank(likes), Rank(engagement), Rank(score)
	for i := range users {
		users[i].Derived.RankViews = rv[i]
		users[i].Derived.RankLikes = rl[i]
		users[i].Derived.RankEngagement = re[i]
		users[i].Derived.RankScore = rs[i]
	}
}

// forEachChunk splits [0,n) into contiguous chunks and runs fn on each in its
// own goroutine. Chunks never overlap, so fn may write its own rows freely.
func forEachChunk(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	size := (n + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}

	var g errgroup.Group
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
