// Package scheduler runs periodic housekeeping for the loyalty wallet.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/metrics"
	"github.com/robfig/cron/v3"
)

// PurgeGrace keeps expired tokens around for a while so late redemption
// attempts still report "expired" instead of "not found".
const PurgeGrace = time.Hour

type TokenPurger interface {
	DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	purger   TokenPurger
	schedule string
	logger   *slog.Logger
	now      func() time.Time
}

func NewScheduler(purger TokenPurger, schedule string, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
		purger:   purger,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the purge job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.PurgeExpiredTokens); err != nil {
		s.logger.Error("failed to schedule token purge job", "error", err)
		return err
	}
	s.logger.Info("scheduled token purge job", "schedule", s.schedule)
	s.cron.Start()
	return nil
}

// Stop returns a context that is done once running jobs finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) PurgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	before := s.now().Add(-PurgeGrace)
	n, err := s.purger.DeleteExpiredTokens(ctx, before)
	if err != nil {
		s.logger.Error("token purge failed", "error", err)
		return
	}
	metrics.ExpiredTokensPurged.Add(float64(n))
	if n > 0 {
		s.logger.Info("purged expired tokens", "count", n, "before", before)
	}
}
