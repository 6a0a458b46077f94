package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"catalog_syncer/internal/domain"
)

// Notification is the payload shape the marketplace pushes. Unknown fields
// are ignored; the required ones are validated before acknowledgment.
type Notification struct {
	ID       string    `json:"id"`
	Topic    string    `json:"topic"`
	Resource string    `json:"resource"`
	UserID   int64     `json:"user_id"`
	Sent     time.Time `json:"sent"`
	Attempts int       `json:"attempts"`
}

// Validate checks the fields phase 1 requires. Everything else is phase 2's
// problem.
func (n Notification) Validate() error {
	if n.Topic == "" {
		return errors.New("topic is required")
	}
	if n.Resource == "" {
		return errors.New("resource is required")
	}
	if n.UserID == 0 {
		return errors.New("user_id is required")
	}
	return nil
}

// IdempotencyKey prefers the delivery id the marketplace assigns; without
// one, topic+resource+sent identifies the delivery.
func (n Notification) IdempotencyKey() string {
	if n.ID != "" {
		return n.ID
	}
	return fmt.Sprintf("%s:%s:%d", n.Topic, n.ResourceID(), n.Sent.Unix())
}

// ResourceID strips the resource path down to the entity id
// ("/items/ABC123" -> "ABC123").
func (n Notification) ResourceID() string {
	trimmed := strings.Trim(n.Resource, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// WebhookProcessor is the two-phase ingestion pipeline. Ingest is the
// synchronous phase: persist and acknowledge, nothing else. ProcessEvent is
// the asynchronous phase: fetch the affected entity fresh and reconcile it.
type WebhookProcessor struct {
	webhooks   WebhookStore
	scanState  ScanStateStore
	source     CatalogSource
	reconciler *Reconciler
	locker     EntityLocker
	logger     *slog.Logger

	rootCtx context.Context
	sem     chan struct{}
	wg      sync.WaitGroup
}

func NewWebhookProcessor(
	rootCtx context.Context,
	webhooks WebhookStore,
	scanState ScanStateStore,
	source CatalogSource,
	reconciler *Reconciler,
	locker EntityLocker,
	concurrency int,
	logger *slog.Logger,
) *WebhookProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &WebhookProcessor{
		webhooks:   webhooks,
		scanState:  scanState,
		source:     source,
		reconciler: reconciler,
		locker:     locker,
		logger:     logger.With("component", "webhooks"),
		rootCtx:    rootCtx,
		sem:        make(chan struct{}, concurrency),
	}
}

// Ingest is phase 1: validate, persist idempotently, schedule phase 2.
// It makes no external API calls and returns fast. A duplicate delivery is
// absorbed silently and reported as such in the returned flag.
func (p *WebhookProcessor) Ingest(ctx context.Context, n Notification) (eventID string, duplicate bool, err error) {
	if err := n.Validate(); err != nil {
		return "", false, err
	}

	receivedAt := time.Now().UTC()
	event := &domain.WebhookEvent{
		EventID:    n.IdempotencyKey(),
		UserID:     n.UserID,
		Topic:      n.Topic,
		ResourceID: n.ResourceID(),
		ReceivedAt: receivedAt,
		Attempts:   0,
	}

	inserted, err := p.webhooks.Insert(ctx, event)
	if err != nil {
		return "", false, fmt.Errorf("persist webhook event: %w", err)
	}
	if !inserted {
		p.logger.Debug("duplicate webhook absorbed", "event_id", event.EventID)
		return event.EventID, true, nil
	}

	p.schedule(*event)
	return event.EventID, false, nil
}

// schedule hands the event to a bounded set of background workers. The
// response to the marketplace never waits for this.
func (p *WebhookProcessor) schedule(event domain.WebhookEvent) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-p.rootCtx.Done():
			return
		}
		if err := p.ProcessEvent(p.rootCtx, event); err != nil {
			p.logger.Warn("async webhook processing failed",
				"event_id", event.EventID,
				"error", err,
			)
		}
	}()
}

// ProcessEvent is phase 2 for one event. Processing for the same entity is
// serialized through the entity lock; different entities run concurrently.
// Any failure leaves the event unprocessed for the sweep.
func (p *WebhookProcessor) ProcessEvent(ctx context.Context, event domain.WebhookEvent) error {
	lastScan, err := p.scanState.LastCompletedAt(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("load last scan time: %w", err)
	}
	if lastScan != nil && event.ReceivedAt.Before(*lastScan) {
		// The full scan is authoritative for everything it covered;
		// replaying an older event would re-apply pre-scan state.
		p.logger.Debug("stale webhook skipped",
			"event_id", event.EventID,
			"received_at", event.ReceivedAt,
			"last_scan", *lastScan,
		)
		return p.webhooks.MarkProcessed(ctx, event.EventID, domain.ProcessingSkipped)
	}

	unlock, err := p.locker.Lock(ctx, "entity:"+event.ResourceID)
	if err != nil {
		if markErr := p.webhooks.MarkFailed(ctx, event.EventID); markErr != nil {
			p.logger.Warn("mark failed errored", "event_id", event.EventID, "error", markErr)
		}
		return fmt.Errorf("acquire entity lock: %w", err)
	}
	defer unlock()

	records, failedIDs, err := p.source.FetchItems(ctx, []string{event.ResourceID})
	if err != nil {
		if markErr := p.webhooks.MarkFailed(ctx, event.EventID); markErr != nil {
			p.logger.Warn("mark failed errored", "event_id", event.EventID, "error", markErr)
		}
		return fmt.Errorf("fetch entity: %w", err)
	}
	if len(records) == 0 {
		// The entity is gone or inaccessible; retrying will not help.
		p.logger.Warn("webhook entity not fetchable",
			"event_id", event.EventID,
			"resource_id", event.ResourceID,
			"failed_ids", failedIDs,
		)
		return p.webhooks.MarkProcessed(ctx, event.EventID, domain.ProcessingCompleted)
	}

	if _, err := p.reconciler.ReconcileBatch(ctx, event.UserID, records); err != nil {
		if markErr := p.webhooks.MarkFailed(ctx, event.EventID); markErr != nil {
			p.logger.Warn("mark failed errored", "event_id", event.EventID, "error", markErr)
		}
		return fmt.Errorf("reconcile entity: %w", err)
	}

	return p.webhooks.MarkProcessed(ctx, event.EventID, domain.ProcessingCompleted)
}

// ProcessPending replays unprocessed events, oldest first. The scheduler
// runs this as the safety net for events whose phase 2 failed or whose
// process died before it ran.
func (p *WebhookProcessor) ProcessPending(ctx context.Context, limit int) (int, error) {
	events, err := p.webhooks.Pending(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list pending events: %w", err)
	}

	processed := 0
	for _, event := range events {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if err := p.ProcessEvent(ctx, event); err != nil {
			p.logger.Warn("pending event replay failed",
				"event_id", event.EventID,
				"error", err,
			)
			continue
		}
		processed++
	}
	return processed, nil
}

// PurgeOld applies the retention policy to processed events.
func (p *WebhookProcessor) PurgeOld(ctx context.Context, age time.Duration) (int64, error) {
	return p.webhooks.DeleteOlderThan(ctx, age)
}

// Drain waits for in-flight phase-2 work during shutdown.
func (p *WebhookProcessor) Drain() {
	p.wg.Wait()
}
