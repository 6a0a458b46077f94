package service

import (
	"context"
	"log/slog"
	"time"

	"catalog_syncer/internal/domain"
)

// EvalInput is one reconciled record as seen by the alert emitter.
// PrevQuantity is only known for changed rows.
type EvalInput struct {
	ProductID     string
	Title         string
	Quantity      int
	PrevQuantity  *int
	LastAlertSent *time.Time
}

// AlertEmitter decides whether a stock alert fires for a reconciled record.
// De-duplication is a per-product cooldown stored on the product row itself.
// Delivery belongs to the external notifier consuming the published messages.
type AlertEmitter struct {
	products  ProductStore
	alerts    AlertStore
	publisher Publisher
	threshold int
	cooldown  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewAlertEmitter(
	products ProductStore,
	alerts AlertStore,
	publisher Publisher,
	threshold int,
	cooldown time.Duration,
	logger *slog.Logger,
) *AlertEmitter {
	return &AlertEmitter{
		products:  products,
		alerts:    alerts,
		publisher: publisher,
		threshold: threshold,
		cooldown:  cooldown,
		logger:    logger.With("component", "alerts"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate fires at most one alert for the record, respecting the cooldown
// window, and reports whether one fired. Failures are logged and swallowed:
// alerting never fails the sync path that triggered it.
func (e *AlertEmitter) Evaluate(ctx context.Context, userID int64, in EvalInput) bool {
	alertType, ok := e.classify(in)
	if !ok {
		return false
	}

	now := e.now()
	if in.LastAlertSent != nil && now.Sub(*in.LastAlertSent) < e.cooldown {
		return false
	}

	alert := &domain.StockAlert{
		ProductID: in.ProductID,
		UserID:    userID,
		AlertType: alertType,
		Quantity:  in.Quantity,
		CreatedAt: now,
	}
	if err := e.alerts.Insert(ctx, alert); err != nil {
		e.logger.Warn("insert alert failed", "product_id", in.ProductID, "error", err)
		return false
	}
	if err := e.products.MarkAlerted(ctx, userID, in.ProductID, now); err != nil {
		e.logger.Warn("mark alerted failed", "product_id", in.ProductID, "error", err)
	}
	if e.publisher != nil {
		if err := e.publisher.PublishAlert(ctx, alert, in.Title); err != nil {
			e.logger.Warn("publish alert failed", "product_id", in.ProductID, "error", err)
		}
	}

	e.logger.Info("stock alert",
		"user_id", userID,
		"product_id", in.ProductID,
		"type", alertType,
		"quantity", in.Quantity,
	)
	return true
}

// classify picks the alert type. Out-of-stock wins over low-stock; movement
// alerts need a known previous quantity and only fire around the threshold
// band, so a healthy catalog stays quiet.
func (e *AlertEmitter) classify(in EvalInput) (domain.AlertType, bool) {
	switch {
	case in.Quantity == 0:
		return domain.AlertOutOfStock, true
	case in.Quantity <= e.threshold:
		return domain.AlertLowStock, true
	case in.PrevQuantity != nil && *in.PrevQuantity <= e.threshold && in.Quantity > e.threshold:
		return domain.AlertStockIncrease, true
	case in.PrevQuantity != nil && in.Quantity < *in.PrevQuantity && in.Quantity <= 2*e.threshold:
		return domain.AlertStockDecrease, true
	default:
		return "", false
	}
}

// Sweep runs a full low-stock pass over the user's catalog. The scanner
// triggers it at scan completion to catch items the incremental path missed.
func (e *AlertEmitter) Sweep(ctx context.Context, userID int64) (int, error) {
	products, err := e.products.LowStock(ctx, userID, e.threshold)
	if err != nil {
		return 0, err
	}

	fired := 0
	for _, p := range products {
		if e.Evaluate(ctx, userID, EvalInput{
			ProductID:     p.ID,
			Title:         p.Title,
			Quantity:      p.AvailableQuantity,
			LastAlertSent: p.LastAlertSent,
		}) {
			fired++
		}
	}

	e.logger.Info("low stock sweep finished",
		"user_id", userID,
		"candidates", len(products),
		"fired", fired,
	)
	return fired, nil
}
