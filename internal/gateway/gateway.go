// Package gateway meters every outbound call to the marketplace API against
// a sliding one-minute window. The window is process-local: the configured
// ceiling is sized with headroom below the real quota so that concurrent
// invocations collectively stay under budget without a distributed counter.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catalog_syncer/internal/config"
	"catalog_syncer/internal/domain"
)

const window = time.Minute

// ErrQueueTimeout is returned (wrapped retryable) when a call waited on the
// internal queue past the configured ceiling. Invocations have a hard
// wall-clock budget, so blocking indefinitely is worse than failing retryable.
var ErrQueueTimeout = errors.New("gateway queue wait exceeded")

// Stats is a snapshot of window utilization.
type Stats struct {
	CurrentRequests    int     `json:"currentRequests"`
	MaxRequests        int     `json:"maxRequests"`
	UtilizationPercent float64 `json:"utilizationPercent"`
	QueueLength        int     `json:"queueLength"`
}

type Gateway struct {
	cfg    config.GatewayConfig
	retry  config.RetryConfig
	logger *slog.Logger

	mu      sync.Mutex
	calls   []time.Time
	waiting int

	now func() time.Time
}

func New(cfg config.GatewayConfig, retry config.RetryConfig, logger *slog.Logger) *Gateway {
	return &Gateway{
		cfg:    cfg,
		retry:  retry,
		logger: logger.With("component", "gateway"),
		now:    time.Now,
	}
}

// Execute meters one call against the window and runs fn. Calls above the
// high-water mark queue until the window slides; the gateway never drops a
// call outright. Transient upstream failures are retried with exponential
// backoff up to the configured attempt count.
func (g *Gateway) Execute(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= g.retry.MaxAttempts; attempt++ {
		if err = g.acquire(ctx); err != nil {
			return err
		}

		err = fn(ctx)
		if err == nil || !domain.IsRetryable(err) {
			return err
		}

		if attempt == g.retry.MaxAttempts {
			break
		}

		backoff := g.calculateBackoff(attempt)
		g.logger.Warn("transient upstream error, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", g.retry.MaxAttempts, err)
}

// acquire blocks until the window has room below the high-water mark, then
// records the call timestamp. It fails retryable after MaxQueueWait.
func (g *Gateway) acquire(ctx context.Context) error {
	deadline := g.now().Add(g.cfg.MaxQueueWait)
	admit := int(float64(g.cfg.MaxPerMinute) * g.cfg.HighWatermark)
	if admit < 1 {
		admit = 1
	}

	queued := false
	defer func() {
		if queued {
			g.mu.Lock()
			g.waiting--
			g.mu.Unlock()
		}
	}()

	for {
		g.mu.Lock()
		g.prune()
		if len(g.calls) < admit {
			g.calls = append(g.calls, g.now())
			g.mu.Unlock()
			return nil
		}
		if !queued {
			queued = true
			g.waiting++
			g.logger.Debug("window saturated, queueing call",
				"current", len(g.calls),
				"admit", admit,
			)
		}
		// Room opens when the oldest call ages out of the window.
		wait := window - g.now().Sub(g.calls[0])
		g.mu.Unlock()

		if wait < 50*time.Millisecond {
			wait = 50 * time.Millisecond
		}
		if g.now().Add(wait).After(deadline) {
			return domain.Retryable(ErrQueueTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Stats returns a utilization snapshot. UtilizationPercent is capped at 100
// and decays as old calls age out of the window.
func (g *Gateway) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune()

	util := float64(len(g.calls)) / float64(g.cfg.MaxPerMinute) * 100
	if util > 100 {
		util = 100
	}
	return Stats{
		CurrentRequests:    len(g.calls),
		MaxRequests:        g.cfg.MaxPerMinute,
		UtilizationPercent: util,
		QueueLength:        g.waiting,
	}
}

// IsNearLimit reports whether utilization crossed the soft watermark.
// Callers planning bulk work should check this before submitting.
func (g *Gateway) IsNearLimit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune()
	return float64(len(g.calls)) >= float64(g.cfg.MaxPerMinute)*g.cfg.SoftWatermark
}

// SmartPause voluntarily backs off while the window sits above the soft
// watermark. Advisory only: it returns once utilization drops, the pause
// budget is spent, or ctx is done.
func (g *Gateway) SmartPause(ctx context.Context) error {
	const maxPauses = 10
	for i := 0; i < maxPauses && g.IsNearLimit(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.cfg.PauseStep):
		}
	}
	return nil
}

// prune drops timestamps older than the window. Caller holds g.mu.
func (g *Gateway) prune() {
	cutoff := g.now().Add(-window)
	i := 0
	for i < len(g.calls) && !g.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		g.calls = append(g.calls[:0], g.calls[i:]...)
	}
}

func (g *Gateway) calculateBackoff(attempt int) time.Duration {
	backoff := g.retry.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > g.retry.MaxBackoff {
		backoff = g.retry.MaxBackoff
	}
	return backoff
}
