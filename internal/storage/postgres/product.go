package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"catalog_syncer/internal/domain"
)

type ProductStore struct {
	db *sqlx.DB
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

// GetComparable loads only the fields the reconciler diffs against, keyed by
// item id.
func (s *ProductStore) GetComparable(ctx context.Context, userID int64, ids []string) (map[string]domain.ComparableFields, error) {
	result := make(map[string]domain.ComparableFields)
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT id, title, sku, available_quantity, price, status, last_sync, last_alert_sent
		FROM products
		WHERE user_id = $1 AND id = ANY($2)`

	var rows []domain.ComparableFields
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, userID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

// InsertBatch writes brand-new rows in one multi-row statement.
func (s *ProductStore) InsertBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (
			id, user_id, title, sku, available_quantity, price, status,
			permalink, category_id, category_name, listing_type, health_score,
			last_sync, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :sku, :available_quantity, :price, :status,
			:permalink, :category_id, :category_name, :listing_type, :health_score,
			:last_sync, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, products)
	return err
}

// UpdateComparable applies a partial update touching only the diffed fields
// plus the sync timestamp. The prevSync guard makes concurrent writers for
// the same row serialize: a stale writer updates zero rows and reports false.
func (s *ProductStore) UpdateComparable(ctx context.Context, userID int64, rec domain.ItemRecord, categoryName *string, prevSync, now time.Time) (bool, error) {
	query := `
		UPDATE products SET
			title = $3,
			sku = $4,
			available_quantity = $5,
			price = $6,
			status = $7,
			category_name = COALESCE($8, category_name),
			last_sync = $9,
			updated_at = $9
		WHERE user_id = $1 AND id = $2 AND last_sync = $10`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		userID, rec.ID,
		rec.Title, rec.SKU, rec.AvailableQuantity, rec.Price, rec.Status,
		categoryName, now, prevSync,
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

// TouchSynced advances last_sync for rows the reconciler classified as
// unchanged. Without this the scan-window seen set only covers written rows,
// and a trailing duplicate of an unchanged item would slip past SyncedSince.
// Comparable fields are untouched, so reclassification stays idempotent.
func (s *ProductStore) TouchSynced(ctx context.Context, userID int64, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE products SET last_sync = $3, updated_at = $3 WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids), at,
	)
	return err
}

// SyncedSince returns which of ids were already seen during the current
// scan window, written or not. The scanner uses it to drop trailing
// duplicates the API returns at pagination boundaries.
func (s *ProductStore) SyncedSince(ctx context.Context, userID int64, ids []string, since time.Time) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM products WHERE user_id = $1 AND id = ANY($2) AND last_sync >= $3`

	var seen []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &seen, query, userID, pq.Array(ids), since)
	return seen, err
}

// LowStock returns active products at or below the threshold.
func (s *ProductStore) LowStock(ctx context.Context, userID int64, threshold int) ([]domain.Product, error) {
	query := `
		SELECT id, user_id, title, sku, available_quantity, price, status,
		       permalink, category_id, category_name, listing_type, health_score,
		       last_sync, last_alert_sent, created_at, updated_at
		FROM products
		WHERE user_id = $1 AND status = $2 AND available_quantity <= $3
		ORDER BY available_quantity ASC`

	var products []domain.Product
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &products, query,
		userID, domain.StatusActive, threshold)
	return products, err
}

// MarkAlerted stamps the cooldown field after an alert fires.
func (s *ProductStore) MarkAlerted(ctx context.Context, userID int64, productID string, at time.Time) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE products SET last_alert_sent = $3 WHERE user_id = $1 AND id = $2`,
		userID, productID, at,
	)
	return err
}
