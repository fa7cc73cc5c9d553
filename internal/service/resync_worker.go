package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ResyncWorker is a periodic background job that refreshes the statistics of
// every creator with a linked channel handle.
type ResyncWorker struct {
	creators *CreatorService
	interval time.Duration
	logger   zerolog.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewResyncWorker creates a worker that ticks every interval.
func NewResyncWorker(creators *CreatorService, interval time.Duration, logger zerolog.Logger) *ResyncWorker {
	return &ResyncWorker{
		creators: creators,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the refresh loop until ctx is cancelled or Stop is called. The
// first tick happens after one interval, not at startup.
func (w *ResyncWorker) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("resync worker starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.logger.Info().Msg("resync worker stopping (context cancelled)")
			return
		case <-w.stopCh:
			w.logger.Info().Msg("resync worker stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop. Safe to call more than once.
func (w *ResyncWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *ResyncWorker) tick(ctx context.Context) {
	start := time.Now()
	changed, failed, err := w.resyncAll(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("resync tick failed")
		return
	}
	w.logger.Info().
		Int("changed", changed).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("resync tick complete")
}

// resyncAll refreshes each linked creator in turn and counts those whose
// statistics changed. One failure does not stop the rest.
func (w *ResyncWorker) resyncAll(ctx context.Context) (changed, failed int, err error) {
	creators, err := w.creators.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, c := range creators {
		handle := strings.TrimPrefix(c.LinkedChannelHandle, "@")
		if handle == "" {
			continue
		}
		if ctx.Err() != nil {
			return changed, failed, ctx.Err()
		}
		ok, err := w.creators.Resync(ctx, c.ID, handle)
		if err != nil {
			w.logger.Warn().Err(err).Str("creator_id", c.ID).Msg("resync failed")
			failed++
			continue
		}
		if ok {
			changed++
		}
	}
	return changed, failed, nil
}
