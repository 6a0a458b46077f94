package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catalog_syncer/internal/domain"
)

// Scanner drives one page of catalog enumeration per invocation. All resume
// state lives in the scan-state store: invocations are short-lived and
// nothing in memory survives between them.
type Scanner struct {
	source     CatalogSource
	scanState  ScanStateStore
	products   ProductStore
	reconciler *Reconciler
	alerts     *AlertEmitter
	gw         GatewayAdvisor
	logger     *slog.Logger

	detailBatchSize   int
	detailConcurrency int
}

func NewScanner(
	source CatalogSource,
	scanState ScanStateStore,
	products ProductStore,
	reconciler *Reconciler,
	alerts *AlertEmitter,
	gw GatewayAdvisor,
	detailBatchSize int,
	detailConcurrency int,
	logger *slog.Logger,
) *Scanner {
	if detailBatchSize <= 0 {
		detailBatchSize = 20
	}
	if detailConcurrency <= 0 {
		detailConcurrency = 5
	}
	return &Scanner{
		source:            source,
		scanState:         scanState,
		products:          products,
		reconciler:        reconciler,
		alerts:            alerts,
		gw:                gw,
		detailBatchSize:   detailBatchSize,
		detailConcurrency: detailConcurrency,
		logger:            logger.With("component", "scanner", "source", source.ID()),
	}
}

// NextPage performs exactly one state transition of the scan. The caller
// re-invokes until HasMore is false. A page is atomic: state is persisted
// only after the page's reconcile completed, so a killed invocation resumes
// from the last finished page.
func (s *Scanner) NextPage(ctx context.Context, userID int64) (*domain.PageResult, error) {
	state, err := s.scanState.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load scan state: %w", err)
	}
	if state == nil || state.Status != domain.ScanActive {
		state, err = s.scanState.Init(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("init scan: %w", err)
		}
		s.logger.Info("scan initialized", "user_id", userID)
	}

	if s.gw != nil && s.gw.IsNearLimit() {
		if err := s.gw.SmartPause(ctx); err != nil {
			return nil, err
		}
	}

	page, err := s.source.SearchPage(ctx, userID, state.ScrollToken)
	if errors.Is(err, domain.ErrStaleCursor) {
		// The cursor outlived its validity window; the only recovery
		// is restarting enumeration from scratch.
		s.logger.Warn("scroll token expired, restarting scan",
			"user_id", userID,
			"processed_so_far", state.ProcessedProducts,
		)
		if _, err := s.scanState.Init(ctx, userID); err != nil {
			return nil, fmt.Errorf("restart scan: %w", err)
		}
		return &domain.PageResult{HasMore: true, Restarted: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	// The API may return trailing duplicates at pagination boundaries.
	// Anything already written during this scan window is dropped and
	// never inflates the totals.
	newIDs := page.ItemIDs
	duplicates := 0
	if len(page.ItemIDs) > 0 {
		seen, err := s.products.SyncedSince(ctx, userID, page.ItemIDs, state.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("dedup page ids: %w", err)
		}
		if len(seen) > 0 {
			seenSet := make(map[string]bool, len(seen))
			for _, id := range seen {
				seenSet[id] = true
			}
			newIDs = newIDs[:0:0]
			for _, id := range page.ItemIDs {
				if seenSet[id] {
					duplicates++
					continue
				}
				newIDs = append(newIDs, id)
			}
		}
	}

	stats, err := s.reconcilePage(ctx, userID, newIDs)
	if err != nil {
		return nil, err
	}

	processed := len(newIDs) - stats.Failed
	state.ScrollToken = page.ScrollToken
	state.TotalProducts = page.Total
	state.ProcessedProducts += processed
	state.DuplicateCount += duplicates

	completed := page.ScrollToken == nil
	if completed {
		now := time.Now().UTC()
		state.Status = domain.ScanCompleted
		state.CompletedAt = &now
	}

	if err := s.scanState.Update(ctx, state); err != nil {
		return nil, fmt.Errorf("persist scan state: %w", err)
	}

	s.logger.Info("scan page finished",
		"user_id", userID,
		"page_items", len(page.ItemIDs),
		"duplicates", duplicates,
		"new", stats.New,
		"updated", stats.Updated,
		"processed_total", state.ProcessedProducts,
		"completed", completed,
	)

	if completed && s.alerts != nil {
		// Full sweep at completion catches items the incremental path
		// missed (for example stock consumed while the scan ran).
		if _, err := s.alerts.Sweep(ctx, userID); err != nil {
			s.logger.Warn("completion sweep failed", "user_id", userID, "error", err)
		}
	}

	return &domain.PageResult{
		HasMore:           !completed,
		ScanCompleted:     completed,
		ProcessedInBatch:  processed,
		NewInBatch:        stats.New,
		TotalSoFar:        state.ProcessedProducts,
		TotalKnown:        state.TotalProducts,
		DuplicatesSkipped: duplicates,
	}, nil
}

// reconcilePage detail-fetches the page's ids in bounded-concurrency batches
// and reconciles each batch. Individually failing items are excluded and
// counted; a storage error cancels the remaining batches and fails the page.
func (s *Scanner) reconcilePage(ctx context.Context, userID int64, ids []string) (domain.ReconcileStats, error) {
	var total domain.ReconcileStats
	if len(ids) == 0 {
		return total, nil
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += s.detailBatchSize {
		end := start + s.detailBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, s.detailConcurrency)

	for _, chunk := range chunks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(chunk []string) {
			defer wg.Done()
			defer func() { <-sem }()

			records, failedIDs, err := s.source.FetchItems(ctx, chunk)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch details: %w", err)
				}
				mu.Unlock()
				cancel()
				return
			}

			stats, err := s.reconciler.ReconcileBatch(ctx, userID, records)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				cancel()
				return
			}
			total.New += stats.New
			total.Updated += stats.Updated
			total.Unchanged += stats.Unchanged
			total.Failed += stats.Failed + len(failedIDs)
		}(chunk)
	}

	wg.Wait()
	if firstErr != nil {
		return domain.ReconcileStats{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return domain.ReconcileStats{}, err
	}
	return total, nil
}
