package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fundterm/fundterm/internal/collector"
	"github.com/fundterm/fundterm/internal/engine"
	"github.com/fundterm/fundterm/internal/models"
)

// Scheduler drives the refresh loop: collect snapshots, compute rows, swap
// the cache. Rows always come from a single cycle; a failed cycle keeps the
// previous rows in place instead of mixing partial results.
type Scheduler struct {
	collector *collector.Collector
	engine    *engine.Engine
	interval  time.Duration

	mu        sync.RWMutex
	rows      []models.SymbolRow
	updatedAt time.Time

	stopCh chan struct{}
}

func New(c *collector.Collector, e *engine.Engine, interval time.Duration) *Scheduler {
	return &Scheduler{
		collector: c,
		engine:    e,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one cycle immediately so the cache isn't empty on first request,
// then begins the polling loop in a background goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.refresh(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.refresh(ctx)
			case <-ctx.Done():
				log.Info().Msg("scheduler stopped: context cancelled")
				return
			case <-s.stopCh:
				log.Info().Msg("scheduler stopped")
				return
			}
		}
	}()

	log.Info().
		Stringer("interval", s.interval).
		Msg("scheduler started")
}

// Stop signals the background goroutine to exit cleanly.
func (s *Scheduler) Stop() {
	close(s.stopCh)
}

// Rows returns the latest cycle's rows and the time that cycle completed.
// The zero time means no cycle has succeeded yet.
func (s *Scheduler) Rows() ([]models.SymbolRow, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows, s.updatedAt
}

func (s *Scheduler) refresh(ctx context.Context) {
	snaps, err := s.collector.Collect(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh cycle failed, keeping previous rows")
		return
	}

	rows := s.engine.Compute(snaps)
	now := time.Now()

	s.mu.Lock()
	s.rows = rows
	s.updatedAt = now
	s.mu.Unlock()

	log.Info().
		Int("symbols", len(rows)).
		Int("venues", len(snaps)).
		Msg("cycle complete")
}
