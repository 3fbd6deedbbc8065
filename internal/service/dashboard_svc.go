package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Jeanads/trendx-analytics/internal/analytics"
	"github.com/Jeanads/trendx-analytics/internal/model"
)

// Sort and ranking keys.
const (
	SortRecent     = "recent"
	SortViews      = "views"
	SortLikes      = "likes"
	SortEngagement = "engagement"
	SortScore      = "score"
)

const (
	DefaultRankingLimit = 10
	DefaultPageSize     = 20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// RankingQuery selects the top users by one ranking.
type RankingQuery struct {
	By    string `query:"by" validate:"oneof=views likes engagement score"`
	Limit int    `query:"limit" validate:"min=1,max=500"`
}

// VideoQuery filters, sorts and pages the video listing.
type VideoQuery struct {
	Platform string `query:"platform" validate:"omitempty,max=32"`
	Owner    string `query:"owner" validate:"omitempty,max=100"`
	MinViews int64  `query:"minViews" validate:"min=0"`
	WithLink bool   `query:"withLink"`
	Sort     string `query:"sort" validate:"oneof=recent views likes engagement score"`
	Page     int    `query:"page" validate:"min=1"`
	PageSize int    `query:"pageSize" validate:"oneof=10 20 50 100"`
}

// Normalize fills unset fields with their defaults.
func (q *RankingQuery) Normalize() {
	if q.By == "" {
		q.By = SortViews
	}
	if q.Limit == 0 {
		q.Limit = DefaultRankingLimit
	}
}

// Validate normalizes q and checks it against its field constraints.
func (q *RankingQuery) Validate() error {
	q.Normalize()
	if err := validate.Struct(q); err != nil {
		return invalid(err)
	}
	return nil
}

// Normalize trims filters and fills unset fields with their defaults.
func (q *VideoQuery) Normalize() {
	q.Platform = strings.TrimSpace(q.Platform)
	q.Owner = strings.TrimSpace(q.Owner)
	if q.Sort == "" {
		q.Sort = SortRecent
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
}

// invalid turns a validator error into an ErrInvalidQuery naming the first
// offending field.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Errorf("%w: %s must satisfy %s=%s", ErrInvalidQuery, fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%w: %s must satisfy %s", ErrInvalidQuery, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
}

// DashboardService answers read queries against the current snapshot.
type DashboardService struct {
	snapshots *SnapshotService
}

func NewDashboardService(snapshots *SnapshotService) *DashboardService {
	return &DashboardService{snapshots: snapshots}
}

// Snapshot returns the snapshot queries are currently served from.
func (s *DashboardService) Snapshot() (*Snapshot, error) {
	return s.snapshots.Current()
}

// Summary returns the dashboard overview.
func (s *DashboardService) Summary() (model.Summary, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return model.Summary{}, err
	}
	return snap.Summary, nil
}

// Users returns every user ordered by sortBy, highest first. Ties keep the
// snapshot order.
func (s *DashboardService) Users(sortBy string) ([]model.UserAggregate, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = SortViews
	}
	key, ok := userKeys[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, sortBy)
	}

	users := make([]model.UserAggregate, len(snap.Users))
	copy(users, snap.Users)
	sort.SliceStable(users, func(i, j int) bool {
		return key(&users[i]) > key(&users[j])
	})
	return users, nil
}

var userKeys = map[string]func(*model.UserAggregate) float64{
	SortViews:      func(u *model.UserAggregate) float64 { return float64(u.TotalViews) },
	SortLikes:      func(u *model.UserAggregate) float64 { return float64(u.TotalLikes) },
	SortEngagement: func(u *model.UserAggregate) float64 { return u.Derived.EngagementRate },
	SortScore:      func(u *model.UserAggregate) float64 { return u.Derived.PerformanceScore },
}

// User returns one user with profile insights.
func (s *DashboardService) User(name string) (*model.UserProfile, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	u, ok := snap.Resolver().Directory().ByName(name)
	if !ok {
		return nil, ErrUserNotFound
	}

	insights, recs := analytics.Insights(u, snap.Stats)
	return &model.UserProfile{
		User:            *u,
		Insights:        insights,
		Recommendations: recs,
	}, nil
}

// Rankings returns the ranked users for q.By in rank order. Unranked users
// are left out.
func (s *DashboardService) Rankings(q RankingQuery) ([]model.UserAggregate, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return snap.Rankings(q)
}

// Rankings answers q against this snapshot.
func (s *Snapshot) Rankings(q RankingQuery) ([]model.UserAggregate, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rank := rankKeys[q.By]
	ranked := make([]model.UserAggregate, 0, len(s.Users))
	for i := range s.Users {
		if rank(&s.Users[i]) > 0 {
			ranked = append(ranked, s.Users[i])
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank(&ranked[i]) < rank(&ranked[j])
	})
	if len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}
	return ranked, nil
}

var rankKeys = map[string]func(*model.UserAggregate) int{
	SortViews:      func(u *model.UserAggregate) int { return u.Derived.RankViews },
	SortLikes:      func(u *model.UserAggregate) int { return u.Derived.RankLikes },
	SortEngagement: func(u *model.UserAggregate) int { return u.Derived.RankEngagement },
	SortScore:      func(u *model.UserAggregate) int { return u.Derived.RankScore },
}

// Videos filters, sorts and pages the video table. A page past the end is
// clamped to the last page.
func (s *DashboardService) Videos(q VideoQuery) (*model.VideoPage, error) {
	q.Normalize()
	if err := validate.Struct(q); err != nil {
		return nil, invalid(err)
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.VideoRecord, 0, len(snap.Videos))
	for i := range snap.Videos {
		if q.matches(&snap.Videos[i]) {
			filtered = append(filtered, snap.Videos[i])
		}
	}

	key := videoKeys[q.Sort]
	sort.SliceStable(filtered, func(i, j int) bool {
		return key(&filtered[i]) > key(&filtered[j])
	})

	pages := (len(filtered) + q.PageSize - 1) / q.PageSize
	if pages < 1 {
		pages = 1
	}
	page := min(q.Page, pages)

	lo := min((page-1)*q.PageSize, len(filtered))
	hi := min(lo+q.PageSize, len(filtered))

	return &model.VideoPage{
		Items:    filtered[lo:hi],
		Total:    len(snap.Videos),
		Filtered: len(filtered),
		Page:     page,
		PageSize: q.PageSize,
		Pages:    pages,
	}, nil
}

func (q *VideoQuery) matches(v *model.VideoRecord) bool {
	if q.Platform != "" && !strings.EqualFold(q.Platform, "all") && !strings.EqualFold(v.Platform, q.Platform) {
		return false
	}
	if q.Owner != "" && !strings.EqualFold(v.OwnerName(), q.Owner) {
		return false
	}
	if v.Views < q.MinViews {
		return false
	}
	if q.WithLink && !v.Derived.HasLink {
		return false
	}
	return true
}

var videoKeys = map[string]func(*model.VideoRecord) float64{
	SortRecent:     func(v *model.VideoRecord) float64 { return float64(v.ID) },
	SortViews:      func(v *model.VideoRecord) float64 { return float64(v.Views) },
	SortLikes:      func(v *model.VideoRecord) float64 { return float64(v.Likes) },
	SortEngagement: func(v *model.VideoRecord) float64 { return v.Derived.EngagementRate },
	SortScore:      func(v *model.VideoRecord) float64 { return v.Derived.Score },
}

// Resolve runs the link resolver against the current snapshot.
func (s *DashboardService) Resolve(rawURL string) (model.LinkResolution, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return model.LinkResolution{}, err
	}
	return snap.Resolver().Resolve(rawURL), nil
}

// Accounts returns the account-aggregation report of the current snapshot.
func (s *DashboardService) Accounts() ([]model.AccountReport, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return snap.Accounts(), nil
}
