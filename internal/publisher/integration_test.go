//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"catalog_syncer/internal/domain"
	"catalog_syncer/testdata/utils"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func testConfig(url, suffix string) Config {
	return Config{
		URL:              url,
		Exchange:         "test-exchange-" + suffix,
		ChangeRoutingKey: "product.changed",
		AlertRoutingKey:  "stock.alert",
		QueueName:        "test-queue-" + suffix,
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(testConfig(s.amqpURL, "conn"), s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_ProductCreate() {
	cfg := testConfig(s.amqpURL, "create")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	product := &domain.Product{
		ID:                "MLA123456",
		UserID:            42,
		Title:             "Test Item",
		SKU:               utils.Ptr("SKU-42"),
		AvailableQuantity: 10,
		Price:             decimal.RequireFromString("1299.99"),
		Status:            domain.StatusActive,
		Permalink:         "https://example.test/items/MLA123456",
		CategoryID:        "MLA1055",
		ListingType:       "gold_special",
		HealthScore:       0.85,
		LastSync:          now,
	}

	err = pub.PublishProductChange(s.ctx, product, true)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal(cfg.ChangeRoutingKey, msg.RoutingKey)

	var received ProductChangeMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("create", received.Action)
	s.Equal("MLA123456", received.Product.ID)
	s.Equal("Test Item", received.Product.Title)
	s.Require().NotNil(received.Product.SKU)
	s.Equal("SKU-42", *received.Product.SKU)
	s.True(received.Product.Price.Equal(decimal.RequireFromString("1299.99")))
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_ProductUpdate() {
	cfg := testConfig(s.amqpURL, "update")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	product := &domain.Product{
		ID:                "MLA777",
		UserID:            42,
		Title:             "Updated Item",
		AvailableQuantity: 3,
		Price:             decimal.NewFromInt(500),
		Status:            domain.StatusActive,
	}

	err = pub.PublishProductChange(s.ctx, product, false)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received ProductChangeMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal("update", received.Action)
	s.Equal("MLA777", received.Product.ID)
	s.Equal(3, received.Product.AvailableQuantity)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_StockAlert() {
	cfg := testConfig(s.amqpURL, "alert")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	alert := &domain.StockAlert{
		ProductID: "MLA123456",
		UserID:    42,
		AlertType: domain.AlertOutOfStock,
		Quantity:  0,
		CreatedAt: now,
	}

	err = pub.PublishAlert(s.ctx, alert, "Test Item")
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal(cfg.AlertRoutingKey, msg.RoutingKey)
	s.Equal("application/json", msg.ContentType)

	var received StockAlertMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(domain.AlertOutOfStock, received.Alert.AlertType)
	s.Equal("MLA123456", received.Alert.ProductID)
	s.Equal(0, received.Alert.Quantity)
	s.Equal("Test Item", received.ProductTitle)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_BothKeysReachSameQueue() {
	cfg := testConfig(s.amqpURL, "both")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	product := &domain.Product{ID: "MLA1", UserID: 42, Price: decimal.NewFromInt(100)}
	s.NoError(pub.PublishProductChange(s.ctx, product, true))

	alert := &domain.StockAlert{ProductID: "MLA1", UserID: 42, AlertType: domain.AlertLowStock, Quantity: 2}
	s.NoError(pub.PublishAlert(s.ctx, alert, "Item"))

	first := s.consumeMessage(cfg)
	s.Require().NotNil(first)
	second := s.consumeMessage(cfg)
	s.Require().NotNil(second)

	keys := []string{first.RoutingKey, second.RoutingKey}
	s.Contains(keys, cfg.ChangeRoutingKey)
	s.Contains(keys, cfg.AlertRoutingKey)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessagePersistence() {
	cfg := testConfig(s.amqpURL, "persist")

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	product := &domain.Product{ID: "MLA9", UserID: 42, Price: decimal.NewFromInt(1)}
	s.NoError(pub.PublishProductChange(s.ctx, product, true))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
