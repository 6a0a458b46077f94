package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"catalog_syncer/internal/domain"
	"catalog_syncer/internal/service/mocks"
	"catalog_syncer/testdata/utils"
)

type AlertEmitterTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	products  *mocks.MockProductStore
	alerts    *mocks.MockAlertStore
	publisher *mocks.MockPublisher

	emitter *AlertEmitter
	now     time.Time
}

func (s *AlertEmitterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.products = mocks.NewMockProductStore(s.ctrl)
	s.alerts = mocks.NewMockAlertStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.emitter = NewAlertEmitter(s.products, s.alerts, s.publisher, 5, 24*time.Hour, logger)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.emitter.now = func() time.Time { return s.now }
}

func (s *AlertEmitterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAlertEmitterTestSuite(t *testing.T) {
	suite.Run(t, new(AlertEmitterTestSuite))
}

func (s *AlertEmitterTestSuite) expectFire(alertType domain.AlertType, quantity int) {
	s.alerts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, alert *domain.StockAlert) error {
			s.Equal(alertType, alert.AlertType)
			s.Equal(quantity, alert.Quantity)
			s.Equal(s.now, alert.CreatedAt)
			return nil
		},
	)
	s.products.EXPECT().MarkAlerted(gomock.Any(), int64(42), "MLA1", s.now).Return(nil)
	s.publisher.EXPECT().PublishAlert(gomock.Any(), gomock.Any(), "Widget").Return(nil)
}

func (s *AlertEmitterTestSuite) TestEvaluate_OutOfStock() {
	s.expectFire(domain.AlertOutOfStock, 0)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID: "MLA1",
		Title:     "Widget",
		Quantity:  0,
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_LowStock() {
	s.expectFire(domain.AlertLowStock, 3)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID: "MLA1",
		Title:     "Widget",
		Quantity:  3,
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_OutOfStockWinsOverLowStock() {
	// Quantity zero is also below the threshold; the more severe type wins.
	s.expectFire(domain.AlertOutOfStock, 0)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:    "MLA1",
		Title:        "Widget",
		Quantity:     0,
		PrevQuantity: utils.Ptr(8),
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_StockIncreaseAboveThreshold() {
	s.expectFire(domain.AlertStockIncrease, 12)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:    "MLA1",
		Title:        "Widget",
		Quantity:     12,
		PrevQuantity: utils.Ptr(3),
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_StockDecreaseNearThreshold() {
	s.expectFire(domain.AlertStockDecrease, 8)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:    "MLA1",
		Title:        "Widget",
		Quantity:     8,
		PrevQuantity: utils.Ptr(10),
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_HealthyCatalogStaysQuiet() {
	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:    "MLA1",
		Title:        "Widget",
		Quantity:     40,
		PrevQuantity: utils.Ptr(50),
	})
	s.False(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_CooldownSuppressesRepeat() {
	recent := s.now.Add(-time.Hour)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:     "MLA1",
		Title:         "Widget",
		Quantity:      2,
		LastAlertSent: &recent,
	})
	s.False(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_FiresAgainAfterCooldown() {
	old := s.now.Add(-25 * time.Hour)
	s.expectFire(domain.AlertLowStock, 2)

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID:     "MLA1",
		Title:         "Widget",
		Quantity:      2,
		LastAlertSent: &old,
	})
	s.True(fired)
}

func (s *AlertEmitterTestSuite) TestEvaluate_InsertFailureSwallowed() {
	s.alerts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	fired := s.emitter.Evaluate(context.Background(), 42, EvalInput{
		ProductID: "MLA1",
		Title:     "Widget",
		Quantity:  0,
	})
	s.False(fired)
}

func (s *AlertEmitterTestSuite) TestSweep_CountsFiredAlerts() {
	ctx := context.Background()
	cooledDown := s.now.Add(-time.Hour)

	s.products.EXPECT().LowStock(ctx, int64(42), 5).Return([]domain.Product{
		{ID: "MLA1", Title: "Widget", AvailableQuantity: 2},
		{ID: "MLA2", Title: "Gadget", AvailableQuantity: 4, LastAlertSent: &cooledDown},
	}, nil)

	// Only the first product fires; the second is inside its cooldown.
	s.alerts.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	s.products.EXPECT().MarkAlerted(ctx, int64(42), "MLA1", s.now).Return(nil)
	s.publisher.EXPECT().PublishAlert(ctx, gomock.Any(), "Widget").Return(nil)

	fired, err := s.emitter.Sweep(ctx, 42)

	s.NoError(err)
	s.Equal(1, fired)
}

func (s *AlertEmitterTestSuite) TestSweep_StoreErrorPropagates() {
	ctx := context.Background()

	s.products.EXPECT().LowStock(ctx, int64(42), 5).Return(nil, errors.New("db down"))

	_, err := s.emitter.Sweep(ctx, 42)
	s.Error(err)
}
