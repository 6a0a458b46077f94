package domain

import "time"

type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
	ProcessingSkipped   ProcessingStatus = "skipped"
)

// WebhookEvent is one push notification from the marketplace, persisted
// before it is acknowledged. EventID is the idempotency key: duplicate
// deliveries collapse onto the stored row.
type WebhookEvent struct {
	EventID          string           `db:"event_id"`
	UserID           int64            `db:"user_id"`
	Topic            string           `db:"topic"`
	ResourceID       string           `db:"resource_id"`
	ReceivedAt       time.Time        `db:"received_at"`
	Attempts         int              `db:"attempts"`
	Processed        bool             `db:"processed"`
	ProcessingStatus ProcessingStatus `db:"processing_status"`
	ProcessedAt      *time.Time       `db:"processed_at"`
}

type AlertType string

const (
	AlertLowStock      AlertType = "LOW_STOCK"
	AlertOutOfStock    AlertType = "OUT_OF_STOCK"
	AlertStockDecrease AlertType = "STOCK_DECREASE"
	AlertStockIncrease AlertType = "STOCK_INCREASE"
)

// StockAlert is an immutable record of one emitted alert. Delivery is the
// notifier's job; this row exists for reporting and cooldown auditing.
type StockAlert struct {
	ID        int64     `db:"id"`
	ProductID string    `db:"product_id"`
	UserID    int64     `db:"user_id"`
	AlertType AlertType `db:"alert_type"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}
