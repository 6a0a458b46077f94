package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"catalog_syncer/internal/domain"
)

type ScanStateStore interface {
	Get(ctx context.Context, userID int64) (*domain.ScanState, error)
	Init(ctx context.Context, userID int64) (*domain.ScanState, error)
	Update(ctx context.Context, state *domain.ScanState) error
	LastCompletedAt(ctx context.Context, userID int64) (*time.Time, error)
}

type ProductStore interface {
	GetComparable(ctx context.Context, userID int64, ids []string) (map[string]domain.ComparableFields, error)
	InsertBatch(ctx context.Context, products []domain.Product) error
	UpdateComparable(ctx context.Context, userID int64, rec domain.ItemRecord, categoryName *string, prevSync, now time.Time) (bool, error)
	TouchSynced(ctx context.Context, userID int64, ids []string, at time.Time) error
	SyncedSince(ctx context.Context, userID int64, ids []string, since time.Time) ([]string, error)
	LowStock(ctx context.Context, userID int64, threshold int) ([]domain.Product, error)
	MarkAlerted(ctx context.Context, userID int64, productID string, at time.Time) error
}

type WebhookStore interface {
	Insert(ctx context.Context, event *domain.WebhookEvent) (bool, error)
	Pending(ctx context.Context, limit int) ([]domain.WebhookEvent, error)
	MarkProcessed(ctx context.Context, eventID string, status domain.ProcessingStatus) error
	MarkFailed(ctx context.Context, eventID string) error
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type AlertStore interface {
	Insert(ctx context.Context, alert *domain.StockAlert) error
}

// CatalogSource is the single capability boundary to the external catalog.
// The marketplace implementation talks HTTP through the gateway; the fixture
// implementation generates a deterministic catalog offline.
type CatalogSource interface {
	ID() string
	SearchPage(ctx context.Context, userID int64, scrollToken *string) (*domain.SearchPage, error)
	FetchItems(ctx context.Context, ids []string) ([]domain.ItemRecord, []string, error)
	CategoryName(ctx context.Context, categoryID string) (string, error)
}

// CategoryResolver resolves category ids to display names, best effort.
// It never blocks the write path: a miss returns ok=false, not an error.
type CategoryResolver interface {
	Resolve(ctx context.Context, categoryID string) (string, bool)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishProductChange(ctx context.Context, product *domain.Product, isNew bool) error
	PublishAlert(ctx context.Context, alert *domain.StockAlert, productTitle string) error
	Close() error
}

// EntityLocker serializes phase-2 webhook processing per resource id.
// Lock blocks until the key is free or ctx is done; the returned function
// releases it.
type EntityLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// GatewayAdvisor exposes the advisory backpressure surface of the gateway.
type GatewayAdvisor interface {
	IsNearLimit() bool
	SmartPause(ctx context.Context) error
}
