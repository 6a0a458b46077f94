package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"catalog_syncer/internal/domain"
)

// RabbitMQ publishes reconciled product changes and stock alerts. The
// external notifier consumes the queue and handles delivery (mail, chat,
// whatever); this core only guarantees the messages reach the broker.
type RabbitMQ struct {
	conn             *amqp.Connection
	channel          *amqp.Channel
	exchange         string
	changeRoutingKey string
	alertRoutingKey  string
	logger           *slog.Logger
}

type Config struct {
	URL              string
	Exchange         string
	ChangeRoutingKey string
	AlertRoutingKey  string
	QueueName        string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range []string{cfg.ChangeRoutingKey, cfg.AlertRoutingKey} {
		if err := ch.QueueBind(q.Name, key, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue for %s: %w", key, err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
	)

	return &RabbitMQ{
		conn:             conn,
		channel:          ch,
		exchange:         cfg.Exchange,
		changeRoutingKey: cfg.ChangeRoutingKey,
		alertRoutingKey:  cfg.AlertRoutingKey,
		logger:           logger,
	}, nil
}

type ProductChangeMessage struct {
	Action    string         `json:"action"` // "create" or "update"
	Product   domain.Product `json:"product"`
	Timestamp time.Time      `json:"timestamp"`
}

type StockAlertMessage struct {
	Alert        domain.StockAlert `json:"alert"`
	ProductTitle string            `json:"product_title"`
	Timestamp    time.Time         `json:"timestamp"`
}

func (r *RabbitMQ) PublishProductChange(ctx context.Context, product *domain.Product, isNew bool) error {
	action := "update"
	if isNew {
		action = "create"
	}

	msg := ProductChangeMessage{
		Action:    action,
		Product:   *product,
		Timestamp: time.Now().UTC(),
	}
	if err := r.publish(ctx, r.changeRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published product change",
		"product_id", product.ID,
		"action", action,
	)
	return nil
}

func (r *RabbitMQ) PublishAlert(ctx context.Context, alert *domain.StockAlert, productTitle string) error {
	msg := StockAlertMessage{
		Alert:        *alert,
		ProductTitle: productTitle,
		Timestamp:    time.Now().UTC(),
	}
	if err := r.publish(ctx, r.alertRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published stock alert",
		"product_id", alert.ProductID,
		"type", alert.AlertType,
	)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
