package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"catalog_syncer/internal/domain"
)

type WebhookStore struct {
	db *sqlx.DB
}

func NewWebhookStore(db *sqlx.DB) *WebhookStore {
	return &WebhookStore{db: db}
}

// Insert persists one event. Duplicate deliveries of the same event_id are
// absorbed silently; the return value reports whether this call stored a new
// row (and therefore whether phase-2 processing should be scheduled).
func (s *WebhookStore) Insert(ctx context.Context, event *domain.WebhookEvent) (bool, error) {
	query := `
		INSERT INTO webhook_events (
			event_id, user_id, topic, resource_id, received_at,
			attempts, processed, processing_status
		) VALUES ($1, $2, $3, $4, $5, $6, false, $7)
		ON CONFLICT (event_id) DO NOTHING`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		event.EventID,
		event.UserID,
		event.Topic,
		event.ResourceID,
		event.ReceivedAt,
		event.Attempts,
		domain.ProcessingPending,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Pending lists unprocessed events, oldest first, for the replay sweep.
func (s *WebhookStore) Pending(ctx context.Context, limit int) ([]domain.WebhookEvent, error) {
	query := `
		SELECT event_id, user_id, topic, resource_id, received_at,
		       attempts, processed, processing_status, processed_at
		FROM webhook_events
		WHERE processed = false
		ORDER BY received_at ASC
		LIMIT $1`

	var events []domain.WebhookEvent
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &events, query, limit)
	return events, err
}

// MarkProcessed finalizes one event and bumps its attempt counter.
func (s *WebhookStore) MarkProcessed(ctx context.Context, eventID string, status domain.ProcessingStatus) error {
	query := `
		UPDATE webhook_events SET
			processed = true,
			processing_status = $2,
			attempts = attempts + 1,
			processed_at = $3
		WHERE event_id = $1`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, eventID, status, time.Now().UTC())
	return err
}

// MarkFailed records a failed attempt but leaves the event unprocessed so
// the sweep retries it.
func (s *WebhookStore) MarkFailed(ctx context.Context, eventID string) error {
	query := `
		UPDATE webhook_events SET
			processing_status = $2,
			attempts = attempts + 1
		WHERE event_id = $1`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, eventID, domain.ProcessingFailed)
	return err
}

// DeleteOlderThan is the age-based retention pass over processed events.
func (s *WebhookStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`DELETE FROM webhook_events WHERE processed = true AND received_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
