package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"catalog_syncer/internal/config"
	"catalog_syncer/internal/domain"
)

// ScanDriver advances one scan page per call; the scheduler is the caller
// that keeps re-invoking it.
type ScanDriver interface {
	NextPage(ctx context.Context, userID int64) (*domain.PageResult, error)
}

// WebhookSweeper replays pending events and applies retention.
type WebhookSweeper interface {
	ProcessPending(ctx context.Context, limit int) (int, error)
	PurgeOld(ctx context.Context, age time.Duration) (int64, error)
}

// Scheduler drives the periodic work: scan continuation for each configured
// user, the pending-webhook sweep, and the daily retention pass. It is the
// in-process stand-in for the external trigger that re-invokes the scanner.
type Scheduler struct {
	scanner  ScanDriver
	webhooks WebhookSweeper
	syncCfg  config.SyncConfig
	whCfg    config.WebhookConfig
	logger   *slog.Logger
	cron     *cron.Cron
}

func New(
	scanner ScanDriver,
	webhooks WebhookSweeper,
	syncCfg config.SyncConfig,
	whCfg config.WebhookConfig,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		scanner:  scanner,
		webhooks: webhooks,
		syncCfg:  syncCfg,
		whCfg:    whCfg,
		logger:   logger.With("component", "scheduler"),
		cron:     cron.New(),
	}
}

// Start registers the jobs and blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(every(s.syncCfg.Interval), func() { s.runScans(ctx) })
	if err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}
	_, err = s.cron.AddFunc(every(s.whCfg.SweepInterval), func() { s.runSweep(ctx) })
	if err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}
	_, err = s.cron.AddFunc("@daily", func() { s.runRetention(ctx) })
	if err != nil {
		return fmt.Errorf("register retention job: %w", err)
	}

	s.logger.Info("scheduler started",
		"scan_interval", s.syncCfg.Interval,
		"sweep_interval", s.whCfg.SweepInterval,
		"users", len(s.syncCfg.Users),
	)

	s.cron.Start()
	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// runScans pushes each configured user's scan forward by up to
// MaxPagesPerRun pages. A scan that needs more pages continues on the next
// tick from its stored cursor.
func (s *Scheduler) runScans(ctx context.Context) {
	for _, userID := range s.syncCfg.Users {
		for page := 0; page < s.syncCfg.MaxPagesPerRun; page++ {
			if ctx.Err() != nil {
				return
			}

			result, err := s.scanner.NextPage(ctx, userID)
			if err != nil {
				if domain.IsRetryable(err) {
					s.logger.Warn("scan page retryable failure, yielding until next tick",
						"user_id", userID,
						"error", err,
					)
				} else {
					s.logger.Error("scan page failed", "user_id", userID, "error", err)
				}
				break
			}
			if !result.HasMore {
				break
			}
		}
	}
}

func (s *Scheduler) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.whCfg.SweepInterval)
	defer cancel()

	n, err := s.webhooks.ProcessPending(sweepCtx, s.whCfg.SweepLimit)
	if err != nil {
		s.logger.Error("webhook sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("webhook sweep replayed events", "count", n)
	}
}

func (s *Scheduler) runRetention(ctx context.Context) {
	deleted, err := s.webhooks.PurgeOld(ctx, s.whCfg.Retention)
	if err != nil {
		s.logger.Error("webhook retention pass failed", "error", err)
		return
	}
	s.logger.Info("webhook retention pass finished", "deleted", deleted)
}

func every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}
