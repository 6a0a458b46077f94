package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	API      APIConfig      `yaml:"api"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Sync     SyncConfig     `yaml:"sync"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Alerts   AlertConfig    `yaml:"alerts"`
	HTTP     HTTPConfig     `yaml:"http"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig is optional; an empty Addr disables the redis-backed entity
// lock and category cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RabbitMQConfig is optional; an empty URL disables publishing.
type RabbitMQConfig struct {
	URL              string `yaml:"url"`
	Exchange         string `yaml:"exchange"`
	ChangeRoutingKey string `yaml:"change_routing_key"`
	AlertRoutingKey  string `yaml:"alert_routing_key"`
	QueueName        string `yaml:"queue_name"`
}

type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	AccessToken string        `yaml:"access_token"`
	Source      string        `yaml:"source"` // "marketplace" or "fixture"
	PageSize    int           `yaml:"page_size"`
	Timeout     time.Duration `yaml:"timeout"`
	Retry       RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// GatewayConfig bounds outbound call volume against the marketplace quota.
// MaxPerMinute defaults well under the documented ceiling because the window
// is process-local and concurrent invocations each keep their own.
type GatewayConfig struct {
	MaxPerMinute  int           `yaml:"max_per_minute"`
	HighWatermark float64       `yaml:"high_watermark"`
	SoftWatermark float64       `yaml:"soft_watermark"`
	MaxQueueWait  time.Duration `yaml:"max_queue_wait"`
	PauseStep     time.Duration `yaml:"pause_step"`
}

type SyncConfig struct {
	Interval          time.Duration `yaml:"interval"`
	MaxPagesPerRun    int           `yaml:"max_pages_per_run"`
	DetailBatchSize   int           `yaml:"detail_batch_size"`
	DetailConcurrency int           `yaml:"detail_concurrency"`
	Users             []int64       `yaml:"users"`
}

type WebhookConfig struct {
	Concurrency   int           `yaml:"concurrency"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	SweepLimit    int           `yaml:"sweep_limit"`
	Retention     time.Duration `yaml:"retention"`
	LockTTL       time.Duration `yaml:"lock_ttl"`
}

type AlertConfig struct {
	LowStockThreshold int           `yaml:"low_stock_threshold"`
	Cooldown          time.Duration `yaml:"cooldown"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.API.Source == "" {
		c.API.Source = "fixture"
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = 50
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.API.Retry.MaxAttempts == 0 {
		c.API.Retry.MaxAttempts = 3
	}
	if c.API.Retry.InitialBackoff == 0 {
		c.API.Retry.InitialBackoff = 1 * time.Second
	}
	if c.API.Retry.MaxBackoff == 0 {
		c.API.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Gateway.MaxPerMinute == 0 {
		// 70% of the documented 1400 req/min quota; the window is
		// process-local so concurrent invocations need headroom.
		c.Gateway.MaxPerMinute = 980
	}
	if c.Gateway.HighWatermark == 0 {
		c.Gateway.HighWatermark = 0.95
	}
	if c.Gateway.SoftWatermark == 0 {
		c.Gateway.SoftWatermark = 0.80
	}
	if c.Gateway.MaxQueueWait == 0 {
		c.Gateway.MaxQueueWait = 20 * time.Second
	}
	if c.Gateway.PauseStep == 0 {
		c.Gateway.PauseStep = 500 * time.Millisecond
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = 5 * time.Minute
	}
	if c.Sync.MaxPagesPerRun == 0 {
		c.Sync.MaxPagesPerRun = 20
	}
	if c.Sync.DetailBatchSize == 0 {
		c.Sync.DetailBatchSize = 20
	}
	if c.Sync.DetailConcurrency == 0 {
		c.Sync.DetailConcurrency = 5
	}
	if c.Webhook.Concurrency == 0 {
		c.Webhook.Concurrency = 4
	}
	if c.Webhook.SweepInterval == 0 {
		c.Webhook.SweepInterval = time.Minute
	}
	if c.Webhook.SweepLimit == 0 {
		c.Webhook.SweepLimit = 100
	}
	if c.Webhook.Retention == 0 {
		c.Webhook.Retention = 7 * 24 * time.Hour
	}
	if c.Webhook.LockTTL == 0 {
		c.Webhook.LockTTL = 30 * time.Second
	}
	if c.Alerts.LowStockThreshold == 0 {
		c.Alerts.LowStockThreshold = 5
	}
	if c.Alerts.Cooldown == 0 {
		c.Alerts.Cooldown = 24 * time.Hour
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.RabbitMQ.URL != "" {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "catalog_syncer"
		}
		if c.RabbitMQ.ChangeRoutingKey == "" {
			c.RabbitMQ.ChangeRoutingKey = "product.changed"
		}
		if c.RabbitMQ.AlertRoutingKey == "" {
			c.RabbitMQ.AlertRoutingKey = "stock.alert"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "catalog_events"
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
