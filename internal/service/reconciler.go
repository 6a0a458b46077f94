package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"catalog_syncer/internal/domain"
)

// Reconciler diffs freshly fetched records against stored rows and applies
// the minimal writes: full inserts for new items, partial updates for
// changed ones, nothing for unchanged ones.
type Reconciler struct {
	products   ProductStore
	txManager  TransactionManager
	categories CategoryResolver
	alerts     *AlertEmitter
	publisher  Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewReconciler(
	products ProductStore,
	txManager TransactionManager,
	categories CategoryResolver,
	alerts *AlertEmitter,
	publisher Publisher,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		products:   products,
		txManager:  txManager,
		categories: categories,
		alerts:     alerts,
		publisher:  publisher,
		logger:     logger.With("component", "reconciler"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type changedRecord struct {
	rec  domain.ItemRecord
	prev domain.ComparableFields
}

// ReconcileBatch classifies and writes one batch for one user. All writes of
// the batch share a transaction: a storage failure aborts them together and
// surfaces the error, so the caller's state stays unmarked and a retry
// re-attempts the same work. Alert evaluation and change publishing run
// after the commit and never fail the batch.
func (r *Reconciler) ReconcileBatch(ctx context.Context, userID int64, records []domain.ItemRecord) (domain.ReconcileStats, error) {
	stats := domain.ReconcileStats{}
	if len(records) == 0 {
		return stats, nil
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}

	existing, err := r.products.GetComparable(ctx, userID, ids)
	if err != nil {
		return stats, fmt.Errorf("load existing rows: %w", err)
	}

	var (
		fresh     []domain.ItemRecord
		changed   []changedRecord
		unchanged []string
	)
	for _, rec := range records {
		prev, ok := existing[rec.ID]
		switch {
		case !ok:
			fresh = append(fresh, rec)
		case prev.Differs(rec):
			changed = append(changed, changedRecord{rec: rec, prev: prev})
		default:
			unchanged = append(unchanged, rec.ID)
			stats.Unchanged++
		}
	}

	names := r.resolveCategories(ctx, fresh, changed)
	now := r.now()

	err = r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if len(fresh) > 0 {
			rows := make([]domain.Product, len(fresh))
			for i, rec := range fresh {
				rows[i] = buildProduct(userID, rec, names[rec.CategoryID], now)
			}
			if err := r.products.InsertBatch(txCtx, rows); err != nil {
				return fmt.Errorf("insert batch: %w", err)
			}
			stats.New = len(fresh)
		}

		for _, ch := range changed {
			var name *string
			if n, ok := names[ch.rec.CategoryID]; ok {
				name = &n
			}
			applied, err := r.products.UpdateComparable(txCtx, userID, ch.rec, name, ch.prev.LastSync, now)
			if err != nil {
				return fmt.Errorf("update %s: %w", ch.rec.ID, err)
			}
			if applied {
				stats.Updated++
			} else {
				// A concurrent writer got there first with fresher data.
				stats.Unchanged++
			}
		}

		// Unchanged rows get no comparable-field writes, but their sync
		// stamp must still advance: the scanner's duplicate check covers
		// the whole scan window, not just written rows.
		if len(unchanged) > 0 {
			if err := r.products.TouchSynced(txCtx, userID, unchanged, now); err != nil {
				return fmt.Errorf("touch unchanged: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.ReconcileStats{Failed: len(records)}, err
	}

	r.afterCommit(ctx, userID, fresh, changed, names, now)

	r.logger.Debug("batch reconciled",
		"user_id", userID,
		"new", stats.New,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
	)
	return stats, nil
}

// resolveCategories collects distinct category ids from rows that will be
// written and resolves what it can. Failures leave the name unset; the next
// reconcile of the same product retries naturally.
func (r *Reconciler) resolveCategories(ctx context.Context, fresh []domain.ItemRecord, changed []changedRecord) map[string]string {
	names := make(map[string]string)
	if r.categories == nil {
		return names
	}

	distinct := make(map[string]bool)
	for _, rec := range fresh {
		if rec.CategoryID != "" {
			distinct[rec.CategoryID] = true
		}
	}
	for _, ch := range changed {
		if ch.rec.CategoryID != "" {
			distinct[ch.rec.CategoryID] = true
		}
	}

	for id := range distinct {
		if name, ok := r.categories.Resolve(ctx, id); ok {
			names[id] = name
		}
	}
	return names
}

func (r *Reconciler) afterCommit(ctx context.Context, userID int64, fresh []domain.ItemRecord, changed []changedRecord, names map[string]string, now time.Time) {
	for _, rec := range fresh {
		if r.alerts != nil {
			r.alerts.Evaluate(ctx, userID, EvalInput{
				ProductID: rec.ID,
				Title:     rec.Title,
				Quantity:  rec.AvailableQuantity,
			})
		}
		r.publishChange(ctx, userID, rec, names, now, true)
	}
	for _, ch := range changed {
		if r.alerts != nil {
			prevQty := ch.prev.AvailableQuantity
			r.alerts.Evaluate(ctx, userID, EvalInput{
				ProductID:     ch.rec.ID,
				Title:         ch.rec.Title,
				Quantity:      ch.rec.AvailableQuantity,
				PrevQuantity:  &prevQty,
				LastAlertSent: ch.prev.LastAlertSent,
			})
		}
		r.publishChange(ctx, userID, ch.rec, names, now, false)
	}
}

func (r *Reconciler) publishChange(ctx context.Context, userID int64, rec domain.ItemRecord, names map[string]string, now time.Time, isNew bool) {
	if r.publisher == nil {
		return
	}
	product := buildProduct(userID, rec, names[rec.CategoryID], now)
	if err := r.publisher.PublishProductChange(ctx, &product, isNew); err != nil {
		r.logger.Warn("publish product change failed",
			"item_id", rec.ID,
			"error", err,
		)
	}
}

func buildProduct(userID int64, rec domain.ItemRecord, categoryName string, now time.Time) domain.Product {
	p := domain.Product{
		ID:                rec.ID,
		UserID:            userID,
		Title:             rec.Title,
		SKU:               rec.SKU,
		AvailableQuantity: rec.AvailableQuantity,
		Price:             rec.Price,
		Status:            rec.Status,
		Permalink:         rec.Permalink,
		CategoryID:        rec.CategoryID,
		ListingType:       rec.ListingType,
		HealthScore:       rec.HealthScore,
		LastSync:          now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if categoryName != "" {
		p.CategoryName = &categoryName
	}
	return p
}
