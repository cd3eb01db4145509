package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/store"
)

// HousekeepingService periodically persists the expired status on pending
// invitations whose expiry has passed. Reads never depend on the sweep
// (expiry is always derived at read time); this just keeps the stored rows
// honest for reporting and audit.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep marks lapsed pending invitations as expired.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	n, err := s.Store.Invitations().MarkLapsedExpired(ctx, time.Now())
	if err != nil {
		s.Logger.Error("failed to sweep lapsed invitations", "error", err)
		return
	}
	if n > 0 {
		s.Logger.Info("swept lapsed invitations", "count", n)
	} else {
		s.Logger.Debug("no lapsed invitations to sweep")
	}
}
