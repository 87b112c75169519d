package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
)

const DefaultOTPRetention = 24 * time.Hour

// HousekeepingService periodically clears one-time codes that expired long
// ago, so abandoned signups do not keep a dead code around forever. Both the
// code and its expiry are cleared together.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Interval  time.Duration
	Retention time.Duration

	// Now is the clock used to compute the cutoff. Nil means time.Now.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to 1 hour and a non-positive retention to 24 hours.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultOTPRetention
	}

	return &HousekeepingService{
		Store:     s,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("retention", s.Retention),
	)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs a single purge pass and returns how many codes were cleared.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cutoff := now.Add(-s.Retention)

	n, err := s.Store.Accounts().PurgeExpiredOTPs(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to purge expired codes", slog.Any("error", err))
		return 0
	}

	s.Metrics.CodesPurged(n)
	s.Logger.Info("housekeeping cleanup completed", slog.Int64("codes_purged", n))
	return n
}
