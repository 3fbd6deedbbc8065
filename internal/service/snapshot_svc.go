package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Jeanads/trendx-analytics/internal/analytics"
	"github.com/Jeanads/trendx-analytics/internal/model"
	"github.com/Jeanads/trendx-analytics/internal/repository"
	"github.com/Jeanads/trendx-analytics/internal/resolver"
	"github.com/Jeanads/trendx-analytics/pkg/hash"
)

// Snapshot is one fully annotated copy of the dataset. It is never modified
// after it has been published.
type Snapshot struct {
	Users       []model.UserAggregate
	Videos      []model.VideoRecord
	Stats       model.PopulationStats
	Summary     model.Summary
	Fingerprint string
	LoadedAt    time.Time

	resolver *resolver.Resolver

	accountsOnce sync.Once
	accounts     []model.AccountReport
}

// BuildSnapshot annotates users and videos in place and indexes them.
func BuildSnapshot(users []model.UserAggregate, videos []model.VideoRecord, at time.Time) *Snapshot {
	stats := analytics.AnnotateUsers(users)
	analytics.AnnotateVideos(videos)

	snap := &Snapshot{
		Users:    users,
		Videos:   videos,
		Stats:    stats,
		LoadedAt: at,
		resolver: resolver.New(users, videos),
	}
	snap.Fingerprint = fingerprint(users, videos)

	snap.Summary = analytics.Summarize(users, videos, stats)
	snap.Summary.Fingerprint = snap.Fingerprint
	snap.Summary.ComputedAt = at
	return snap
}

// Resolver returns the link resolver bound to this snapshot.
func (s *Snapshot) Resolver() *resolver.Resolver {
	return s.resolver
}

// Accounts returns the account-aggregation report, computed on first use.
func (s *Snapshot) Accounts() []model.AccountReport {
	s.accountsOnce.Do(func() {
		s.accounts = resolver.Accounts(s.Users, s.Videos)
	})
	return s.accounts
}

// fingerprint hashes the annotated rows. Two snapshots of the same data
// share a fingerprint regardless of when they were computed.
func fingerprint(users []model.UserAggregate, videos []model.VideoRecord) string {
	ub, err := json.Marshal(users)
	if err != nil {
		log.Warn().Err(err).Str("component", "snapshot").Msg("fingerprint users")
		return ""
	}
	vb, err := json.Marshal(videos)
	if err != nil {
		log.Warn().Err(err).Str("component", "snapshot").Msg("fingerprint videos")
		return ""
	}
	return hash.Fingerprint(ub, vb)
}

// ReloadObserver is notified after every successful reload.
type ReloadObserver func(elapsed time.Duration, snap *Snapshot)

// SnapshotService owns the current snapshot and rebuilds it from a Source.
type SnapshotService struct {
	source   repository.Source
	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
	observer ReloadObserver
	now      func() time.Time
}

func NewSnapshotService(source repository.Source) *SnapshotService {
	return &SnapshotService{
		source: source,
		now:    time.Now,
	}
}

// OnReload registers fn to be called after each successful reload. It must
// be set before the first reload.
func (s *SnapshotService) OnReload(fn ReloadObserver) {
	s.observer = fn
}

// Source returns the underlying data source.
func (s *SnapshotService) Source() repository.Source {
	return s.source
}

// Current returns the latest published snapshot.
func (s *SnapshotService) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrSnapshotNotReady
	}
	return snap, nil
}

// Reload loads the dataset, annotates it and publishes the new snapshot.
// On failure the previous snapshot stays in place. Concurrent calls are
// serialized.
func (s *SnapshotService) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()

	var (
		users  []model.UserAggregate
		videos []model.VideoRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.source.LoadUsers(gctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		videos, err = s.source.LoadVideos(gctx)
		if err != nil {
			return fmt.Errorf("load videos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := BuildSnapshot(users, videos, s.now().UTC())

	prev := s.current.Swap(snap)
	elapsed := time.Since(start)

	log.Info().
		Str("component", "snapshot").
		Str("source", s.source.Name()).
		Int("users", len(users)).
		Int("videos", len(videos)).
		Str("fingerprint", shortFingerprint(snap.Fingerprint)).
		Bool("changed", prev == nil || prev.Fingerprint != snap.Fingerprint).
		Dur("duration_ms", elapsed).
		Msg("snapshot reloaded")

	if s.observer != nil {
		s.observer(elapsed, snap)
	}
	return snap, nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
