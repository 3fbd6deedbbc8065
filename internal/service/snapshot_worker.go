package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// SnapshotWorker periodically reloads the dataset snapshot.
type SnapshotWorker struct {
	svc      *SnapshotService
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSnapshotWorker creates a worker that reloads every interval.
func NewSnapshotWorker(svc *SnapshotService, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one reload immediately, then one every interval, until ctx is
// cancelled or Stop is called. Stop also cancels a reload in flight.
func (w *SnapshotWorker) Start(ctx context.Context) {
	defer close(w.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger := log.With().Str("component", "snapshot-worker").Logger()
	logger.Info().Dur("interval", w.interval).Msg("starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			logger.Info().Msg("stopping (context cancelled)")
			return
		case <-w.stopCh:
			logger.Info().Msg("stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop and waits until Start has returned, so the
// source is no longer in use. Start must have been called.
func (w *SnapshotWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}

// tick reloads once. A failed reload keeps the previous snapshot.
func (w *SnapshotWorker) tick(ctx context.Context) {
	if _, err := w.svc.Reload(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Str("component", "snapshot-worker").Msg("reload failed, keeping previous snapshot")
	}
}
