package analytics

import "github.com/Jeanads/trendx-analytics/internal/model"

// Summarize aggregates annotated users and videos into the dashboard overview.
// Fingerprint and ComputedAt are left for the caller to stamp.
func Summarize(users []model.UserAggregate, videos []model.VideoRecord, stats model.PopulationStats) model.Summary {
	s := model.Summary{
		TotalUsers:     len(users),
		ActiveUsers:    stats.ActiveUsers,
		InactiveUsers:  len(users) - stats.ActiveUsers,
		AvgEngagement:  roundTo(stats.MeanEngagement, 2),
		StatusCounts:   make(map[string]int, 4),
		CategoryCounts: make(map[string]int, 6),
		VideoRecords:   len(videos),
	}

	for _, name := range StatusNames() {
		s.StatusCounts[name] = 0
	}
	for _, name := range CategoryNames() {
		s.CategoryCounts[name] = 0
	}

	for i := range users {
		u := &users[i]
		s.TotalVideos += u.TotalVideos
		s.TotalViews += u.TotalViews
		s.StatusCounts[u.Derived.ActivityStatus]++
		s.CategoryCounts[u.Derived.Category]++
	}

	for i := range videos {
		if videos[i].Derived.HasLink {
			s.VideosWithLink++
		}
	}
	if len(videos) > 0 {
		s.LinkShare = roundTo(float64(s.VideosWithLink)/float64(len(videos))*100, 1)
	}

	return s
}
