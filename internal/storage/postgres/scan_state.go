package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"catalog_syncer/internal/domain"
)

type ScanStateStore struct {
	db *sqlx.DB
}

func NewScanStateStore(db *sqlx.DB) *ScanStateStore {
	return &ScanStateStore{db: db}
}

// Get returns the stored scan state or nil when the user has never scanned.
func (s *ScanStateStore) Get(ctx context.Context, userID int64) (*domain.ScanState, error) {
	var state domain.ScanState
	query := `
		SELECT user_id, scroll_token, total_products, processed_products,
		       duplicate_count, status, started_at, completed_at, updated_at
		FROM scan_control
		WHERE user_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Init resets the user's scan to a fresh active state. The new scan becomes
// the source of truth for its window, so any unprocessed webhook backlog is
// purged in the same transaction; replaying it later would re-apply
// pre-scan state.
func (s *ScanStateStore) Init(ctx context.Context, userID int64) (*domain.ScanState, error) {
	now := time.Now().UTC()
	state := &domain.ScanState{
		UserID:    userID,
		Status:    domain.ScanActive,
		StartedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM webhook_events WHERE user_id = $1 AND processed = false`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scan_control (
			user_id, scroll_token, total_products, processed_products,
			duplicate_count, status, started_at, completed_at, updated_at
		) VALUES ($1, NULL, 0, 0, 0, $2, $3, NULL, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			scroll_token = NULL,
			total_products = 0,
			processed_products = 0,
			duplicate_count = 0,
			status = EXCLUDED.status,
			started_at = EXCLUDED.started_at,
			completed_at = NULL,
			updated_at = EXCLUDED.updated_at`,
		userID, state.Status, now,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *ScanStateStore) Update(ctx context.Context, state *domain.ScanState) error {
	state.UpdatedAt = time.Now().UTC()
	query := `
		INSERT INTO scan_control (
			user_id, scroll_token, total_products, processed_products,
			duplicate_count, status, started_at, completed_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			scroll_token = EXCLUDED.scroll_token,
			total_products = EXCLUDED.total_products,
			processed_products = EXCLUDED.processed_products,
			duplicate_count = EXCLUDED.duplicate_count,
			status = EXCLUDED.status,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.UserID,
		state.ScrollToken,
		state.TotalProducts,
		state.ProcessedProducts,
		state.DuplicateCount,
		state.Status,
		state.StartedAt,
		state.CompletedAt,
		state.UpdatedAt,
	)
	return err
}

// LastCompletedAt returns when the user's most recent full scan finished,
// or nil if no scan ever completed.
func (s *ScanStateStore) LastCompletedAt(ctx context.Context, userID int64) (*time.Time, error) {
	var completed sql.NullTime
	query := `SELECT completed_at FROM scan_control WHERE user_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &completed, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !completed.Valid {
		return nil, nil
	}
	return &completed.Time, nil
}
