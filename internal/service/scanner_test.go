package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"catalog_syncer/internal/domain"
	"catalog_syncer/internal/service/mocks"
	"catalog_syncer/testdata/utils"
)

type ScannerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source    *mocks.MockCatalogSource
	scanState *mocks.MockScanStateStore
	products  *mocks.MockProductStore
	txManager *mocks.MockTransactionManager

	scanner *Scanner
	logger  *slog.Logger
}

func (s *ScannerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockCatalogSource(s.ctrl)
	s.scanState = mocks.NewMockScanStateStore(s.ctrl)
	s.products = mocks.NewMockProductStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.source.EXPECT().ID().Return("test-source").AnyTimes()

	reconciler := NewReconciler(s.products, s.txManager, nil, nil, nil, s.logger)

	s.scanner = NewScanner(
		s.source,
		s.scanState,
		s.products,
		reconciler,
		nil,
		nil,
		20,
		2,
		s.logger,
	)
}

func (s *ScannerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestScannerTestSuite(t *testing.T) {
	suite.Run(t, new(ScannerTestSuite))
}

func (s *ScannerTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func record(id string, qty int) domain.ItemRecord {
	return domain.ItemRecord{
		ID:                id,
		Title:             "Item " + id,
		AvailableQuantity: qty,
		Price:             decimal.NewFromInt(100),
		Status:            domain.StatusActive,
	}
}

func (s *ScannerTestSuite) TestNextPage_FirstInvocationInitializesScan() {
	ctx := context.Background()
	started := time.Now().UTC()

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(nil, nil)
	s.scanState.EXPECT().Init(ctx, int64(42)).Return(&domain.ScanState{
		UserID:    42,
		Status:    domain.ScanActive,
		StartedAt: started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), nil).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA1", "MLA2"},
		ScrollToken: utils.Ptr("scroll-1"),
		Total:       1230,
	}, nil)

	s.products.EXPECT().SyncedSince(ctx, int64(42), []string{"MLA1", "MLA2"}, started).Return(nil, nil)

	s.products.EXPECT().GetComparable(gomock.Any(), int64(42), []string{"MLA1", "MLA2"}).
		Return(map[string]domain.ComparableFields{}, nil)
	s.expectTransaction()
	s.products.EXPECT().InsertBatch(gomock.Any(), gomock.Len(2)).Return(nil)

	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA1", "MLA2"}).
		Return([]domain.ItemRecord{record("MLA1", 10), record("MLA2", 20)}, nil, nil)

	s.scanState.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state *domain.ScanState) error {
			s.Equal(utils.Ptr("scroll-1"), state.ScrollToken)
			s.Equal(1230, state.TotalProducts)
			s.Equal(2, state.ProcessedProducts)
			s.Equal(domain.ScanActive, state.Status)
			return nil
		},
	)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.True(result.HasMore)
	s.False(result.ScanCompleted)
	s.Equal(2, result.ProcessedInBatch)
	s.Equal(2, result.NewInBatch)
	s.Equal(2, result.TotalSoFar)
	s.Equal(1230, result.TotalKnown)
}

func (s *ScannerTestSuite) TestNextPage_ResumesFromStoredToken() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Minute)

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:            42,
		ScrollToken:       utils.Ptr("scroll-3"),
		TotalProducts:     1230,
		ProcessedProducts: 150,
		Status:            domain.ScanActive,
		StartedAt:         started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-3")).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA151"},
		ScrollToken: utils.Ptr("scroll-4"),
		Total:       1230,
	}, nil)

	s.products.EXPECT().SyncedSince(ctx, int64(42), []string{"MLA151"}, started).Return(nil, nil)

	s.products.EXPECT().GetComparable(gomock.Any(), int64(42), []string{"MLA151"}).
		Return(map[string]domain.ComparableFields{}, nil)
	s.expectTransaction()
	s.products.EXPECT().InsertBatch(gomock.Any(), gomock.Len(1)).Return(nil)

	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA151"}).
		Return([]domain.ItemRecord{record("MLA151", 3)}, nil, nil)

	s.scanState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.True(result.HasMore)
	s.Equal(151, result.TotalSoFar)
}

func (s *ScannerTestSuite) TestNextPage_NilTokenCompletesScan() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Minute)

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:            42,
		ScrollToken:       utils.Ptr("scroll-last"),
		TotalProducts:     1230,
		ProcessedProducts: 1200,
		Status:            domain.ScanActive,
		StartedAt:         started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-last")).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA1201"},
		ScrollToken: nil,
		Total:       1230,
	}, nil)

	s.products.EXPECT().SyncedSince(ctx, int64(42), []string{"MLA1201"}, started).Return(nil, nil)

	s.products.EXPECT().GetComparable(gomock.Any(), int64(42), []string{"MLA1201"}).
		Return(map[string]domain.ComparableFields{}, nil)
	s.expectTransaction()
	s.products.EXPECT().InsertBatch(gomock.Any(), gomock.Len(1)).Return(nil)

	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA1201"}).
		Return([]domain.ItemRecord{record("MLA1201", 1)}, nil, nil)

	s.scanState.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state *domain.ScanState) error {
			s.Equal(domain.ScanCompleted, state.Status)
			s.Nil(state.ScrollToken)
			s.NotNil(state.CompletedAt)
			return nil
		},
	)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.False(result.HasMore)
	s.True(result.ScanCompleted)
	s.Equal(1201, result.TotalSoFar)
}

func (s *ScannerTestSuite) TestNextPage_EmptyPageWithTokenContinues() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Minute)

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:            42,
		ScrollToken:       utils.Ptr("scroll-7"),
		TotalProducts:     1230,
		ProcessedProducts: 350,
		Status:            domain.ScanActive,
		StartedAt:         started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-7")).Return(&domain.SearchPage{
		ItemIDs:     nil,
		ScrollToken: utils.Ptr("scroll-8"),
		Total:       1230,
	}, nil)

	s.scanState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.True(result.HasMore)
	s.False(result.ScanCompleted)
	s.Equal(0, result.ProcessedInBatch)
	s.Equal(350, result.TotalSoFar)
}

func (s *ScannerTestSuite) TestNextPage_StaleCursorRestartsScan() {
	ctx := context.Background()

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:            42,
		ScrollToken:       utils.Ptr("scroll-expired"),
		ProcessedProducts: 400,
		Status:            domain.ScanActive,
		StartedAt:         time.Now().UTC().Add(-10 * time.Minute),
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-expired")).
		Return(nil, domain.ErrStaleCursor)

	s.scanState.EXPECT().Init(ctx, int64(42)).Return(&domain.ScanState{
		UserID:    42,
		Status:    domain.ScanActive,
		StartedAt: time.Now().UTC(),
	}, nil)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.True(result.HasMore)
	s.True(result.Restarted)
	s.Equal(0, result.ProcessedInBatch)
}

func (s *ScannerTestSuite) TestNextPage_DuplicatesSkippedWithoutInflatingTotals() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Minute)

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:            42,
		ScrollToken:       utils.Ptr("scroll-9"),
		TotalProducts:     1230,
		ProcessedProducts: 500,
		DuplicateCount:    2,
		Status:            domain.ScanActive,
		StartedAt:         started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-9")).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA500", "MLA501", "MLA502"},
		ScrollToken: utils.Ptr("scroll-10"),
		Total:       1230,
	}, nil)

	s.products.EXPECT().SyncedSince(ctx, int64(42), []string{"MLA500", "MLA501", "MLA502"}, started).
		Return([]string{"MLA500"}, nil)

	s.products.EXPECT().GetComparable(gomock.Any(), int64(42), []string{"MLA501", "MLA502"}).
		Return(map[string]domain.ComparableFields{}, nil)
	s.expectTransaction()
	s.products.EXPECT().InsertBatch(gomock.Any(), gomock.Len(2)).Return(nil)

	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA501", "MLA502"}).
		Return([]domain.ItemRecord{record("MLA501", 5), record("MLA502", 8)}, nil, nil)

	s.scanState.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, state *domain.ScanState) error {
			s.Equal(502, state.ProcessedProducts)
			s.Equal(3, state.DuplicateCount)
			return nil
		},
	)

	result, err := s.scanner.NextPage(ctx, 42)

	s.NoError(err)
	s.Equal(1, result.DuplicatesSkipped)
	s.Equal(2, result.ProcessedInBatch)
	s.Equal(502, result.TotalSoFar)
}

func (s *ScannerTestSuite) TestNextPage_DetailFetchErrorFailsPage() {
	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Minute)

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:      42,
		ScrollToken: utils.Ptr("scroll-2"),
		Status:      domain.ScanActive,
		StartedAt:   started,
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-2")).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA1"},
		ScrollToken: utils.Ptr("scroll-3"),
		Total:       1230,
	}, nil)

	s.products.EXPECT().SyncedSince(ctx, int64(42), []string{"MLA1"}, started).Return(nil, nil)

	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA1"}).
		Return(nil, nil, errors.New("upstream 500"))

	// No Update expectation: a failed page must not advance the cursor.
	result, err := s.scanner.NextPage(ctx, 42)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "fetch details")
}

// fakeProductStore implements the documented last_sync contract so scanner
// tests can drive the dedup window end to end instead of mocking its answers.
type fakeProductStore struct {
	mu   sync.Mutex
	rows map[string]domain.Product
}

func newFakeProductStore(seed ...domain.Product) *fakeProductStore {
	f := &fakeProductStore{rows: make(map[string]domain.Product)}
	for _, p := range seed {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) GetComparable(_ context.Context, _ int64, ids []string) (map[string]domain.ComparableFields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string]domain.ComparableFields)
	for _, id := range ids {
		p, ok := f.rows[id]
		if !ok {
			continue
		}
		result[id] = domain.ComparableFields{
			ID:                p.ID,
			Title:             p.Title,
			SKU:               p.SKU,
			AvailableQuantity: p.AvailableQuantity,
			Price:             p.Price,
			Status:            p.Status,
			LastSync:          p.LastSync,
			LastAlertSent:     p.LastAlertSent,
		}
	}
	return result, nil
}

func (f *fakeProductStore) InsertBatch(_ context.Context, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range products {
		f.rows[p.ID] = p
	}
	return nil
}

func (f *fakeProductStore) UpdateComparable(_ context.Context, _ int64, rec domain.ItemRecord, _ *string, prevSync, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[rec.ID]
	if !ok || !p.LastSync.Equal(prevSync) {
		return false, nil
	}
	p.Title = rec.Title
	p.SKU = rec.SKU
	p.AvailableQuantity = rec.AvailableQuantity
	p.Price = rec.Price
	p.Status = rec.Status
	p.LastSync = now
	f.rows[rec.ID] = p
	return true, nil
}

func (f *fakeProductStore) TouchSynced(_ context.Context, _ int64, ids []string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			p.LastSync = at
			f.rows[id] = p
		}
	}
	return nil
}

func (f *fakeProductStore) SyncedSince(_ context.Context, _ int64, ids []string, since time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seen []string
	for _, id := range ids {
		if p, ok := f.rows[id]; ok && !p.LastSync.Before(since) {
			seen = append(seen, id)
		}
	}
	return seen, nil
}

func (f *fakeProductStore) LowStock(_ context.Context, _ int64, threshold int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.rows {
		if p.Status == domain.StatusActive && p.AvailableQuantity <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) MarkAlerted(_ context.Context, _ int64, productID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.rows[productID]; ok {
		p.LastAlertSent = &at
		f.rows[productID] = p
	}
	return nil
}

// A trailing duplicate of an item whose row did not change must still be
// caught by the scan-window check: unchanged rows get no comparable-field
// writes, so the window has to advance through TouchSynced instead.
func (s *ScannerTestSuite) TestNextPage_UnchangedTrailingDuplicateNotReprocessed() {
	ctx := context.Background()
	started := time.Now().UTC()

	stored := record("MLA700", 7)
	store := newFakeProductStore(domain.Product{
		ID:                stored.ID,
		UserID:            42,
		Title:             stored.Title,
		AvailableQuantity: stored.AvailableQuantity,
		Price:             stored.Price,
		Status:            stored.Status,
		LastSync:          started.Add(-time.Hour), // synced long before this scan
	})

	reconciler := NewReconciler(store, s.txManager, nil, nil, nil, s.logger)
	scanner := NewScanner(s.source, s.scanState, store, reconciler, nil, nil, 20, 2, s.logger)

	state := &domain.ScanState{UserID: 42, Status: domain.ScanActive, StartedAt: started}
	s.scanState.EXPECT().Get(ctx, int64(42)).Return(state, nil).Times(2)
	s.scanState.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)

	s.source.EXPECT().SearchPage(ctx, int64(42), nil).Return(&domain.SearchPage{
		ItemIDs:     []string{"MLA700"},
		ScrollToken: utils.Ptr("scroll-2"),
		Total:       1,
	}, nil)
	// Pagination boundary: the second page repeats the same id.
	s.source.EXPECT().SearchPage(ctx, int64(42), utils.Ptr("scroll-2")).Return(&domain.SearchPage{
		ItemIDs: []string{"MLA700"},
		Total:   1,
	}, nil)

	// Exactly one detail fetch: the duplicate must never reach the source.
	s.source.EXPECT().FetchItems(gomock.Any(), []string{"MLA700"}).
		Return([]domain.ItemRecord{record("MLA700", 7)}, nil, nil)
	s.expectTransaction()

	result, err := scanner.NextPage(ctx, 42)
	s.Require().NoError(err)
	s.True(result.HasMore)
	s.Equal(1, result.ProcessedInBatch)

	result, err = scanner.NextPage(ctx, 42)
	s.Require().NoError(err)
	s.True(result.ScanCompleted)
	s.Equal(1, result.DuplicatesSkipped)
	s.Equal(0, result.ProcessedInBatch)
	s.Equal(1, result.TotalSoFar)

	s.Equal(1, state.ProcessedProducts)
	s.Equal(1, state.DuplicateCount)
}

func (s *ScannerTestSuite) TestNextPage_SearchErrorPropagates() {
	ctx := context.Background()

	s.scanState.EXPECT().Get(ctx, int64(42)).Return(&domain.ScanState{
		UserID:    42,
		Status:    domain.ScanActive,
		StartedAt: time.Now().UTC(),
	}, nil)

	s.source.EXPECT().SearchPage(ctx, int64(42), nil).Return(nil, errors.New("timeout"))

	result, err := s.scanner.NextPage(ctx, 42)

	s.Error(err)
	s.Nil(result)
	s.Contains(err.Error(), "fetch search page")
}
