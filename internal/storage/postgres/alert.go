package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"catalog_syncer/internal/domain"
)

type AlertStore struct {
	db *sqlx.DB
}

func NewAlertStore(db *sqlx.DB) *AlertStore {
	return &AlertStore{db: db}
}

func (s *AlertStore) Insert(ctx context.Context, alert *domain.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (product_id, user_id, alert_type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		alert.ProductID,
		alert.UserID,
		alert.AlertType,
		alert.Quantity,
		alert.CreatedAt,
	)
	return err
}

// RecentByProduct returns alerts for one product, newest first. Backs the
// /alerts/recent endpoint, not the hot path.
func (s *AlertStore) RecentByProduct(ctx context.Context, userID int64, productID string, limit int) ([]domain.StockAlert, error) {
	query := `
		SELECT id, product_id, user_id, alert_type, quantity, created_at
		FROM stock_alerts
		WHERE user_id = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT $3`

	var alerts []domain.StockAlert
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &alerts, query, userID, productID, limit)
	return alerts, err
}
