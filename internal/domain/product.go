package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusPaused   ProductStatus = "paused"
	StatusClosed   ProductStatus = "closed"
	StatusInactive ProductStatus = "inactive"
)

// Product is the locally stored copy of one marketplace listing.
// Rows are created on first sighting and updated in place; the core never
// hard-deletes them (closed listings keep their row with status "closed").
type Product struct {
	ID                string          `db:"id"`
	UserID            int64           `db:"user_id"`
	Title             string          `db:"title"`
	SKU               *string         `db:"sku"`
	AvailableQuantity int             `db:"available_quantity"`
	Price             decimal.Decimal `db:"price"`
	Status            ProductStatus   `db:"status"`
	Permalink         string          `db:"permalink"`
	CategoryID        string          `db:"category_id"`
	CategoryName      *string         `db:"category_name"`
	ListingType       string          `db:"listing_type"`
	HealthScore       float64         `db:"health_score"`
	LastSync          time.Time       `db:"last_sync"`
	LastAlertSent     *time.Time      `db:"last_alert_sent"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// ItemRecord is one listing as fetched from the external API, already
// normalized by the source (SKU fallback chain applied, price parsed).
type ItemRecord struct {
	ID                string
	Title             string
	SKU               *string
	AvailableQuantity int
	Price             decimal.Decimal
	Status            ProductStatus
	Permalink         string
	CategoryID        string
	ListingType       string
	HealthScore       float64
}

// ComparableFields is the subset of a product row read back for diffing.
// Selecting only these bounds read cost on large catalogs. LastAlertSent
// rides along so the alert emitter needs no second read.
type ComparableFields struct {
	ID                string          `db:"id"`
	Title             string          `db:"title"`
	SKU               *string         `db:"sku"`
	AvailableQuantity int             `db:"available_quantity"`
	Price             decimal.Decimal `db:"price"`
	Status            ProductStatus   `db:"status"`
	LastSync          time.Time       `db:"last_sync"`
	LastAlertSent     *time.Time      `db:"last_alert_sent"`
}

// Differs reports whether the fetched record changed relative to the stored
// comparable fields. Price is compared by value, not representation.
func (c ComparableFields) Differs(r ItemRecord) bool {
	if c.Title != r.Title ||
		c.AvailableQuantity != r.AvailableQuantity ||
		c.Status != r.Status ||
		!c.Price.Equal(r.Price) {
		return true
	}
	switch {
	case c.SKU == nil && r.SKU == nil:
		return false
	case c.SKU == nil || r.SKU == nil:
		return true
	default:
		return *c.SKU != *r.SKU
	}
}
