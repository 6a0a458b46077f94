// Package marketplace implements the catalog source against the real
// marketplace REST API. Every request is metered through the rate-limited
// gateway before it leaves the process.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"catalog_syncer/internal/domain"
)

const SourceID = "marketplace"

// skuAttributeIDs are the structured attribute identifiers checked when the
// primary SKU field is empty.
var skuAttributeIDs = map[string]bool{
	"SELLER_SKU": true,
	"SKU":        true,
	"GTIN":       false, // recognized but never used as SKU
}

// Executor meters an outbound call; satisfied by *gateway.Gateway.
type Executor interface {
	Execute(ctx context.Context, fn func(context.Context) error) error
}

type Config struct {
	BaseURL     string
	AccessToken string
	PageSize    int
	BatchSize   int
	Timeout     time.Duration
}

type Source struct {
	httpClient  *http.Client
	gw          Executor
	baseURL     string
	accessToken string
	pageSize    int
	batchSize   int
	logger      *slog.Logger
}

func New(cfg Config, gw Executor, logger *slog.Logger) *Source {
	if cfg.BatchSize <= 0 || cfg.BatchSize > 20 {
		cfg.BatchSize = 20
	}
	return &Source{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		gw:          gw,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		pageSize:    cfg.PageSize,
		batchSize:   cfg.BatchSize,
		logger:      logger.With("source", SourceID),
	}
}

func (s *Source) ID() string { return SourceID }

// SearchPage fetches one page of the user's item enumeration. A rejected
// scroll token surfaces as domain.ErrStaleCursor so the scanner can restart
// instead of failing permanently.
func (s *Source) SearchPage(ctx context.Context, userID int64, scrollToken *string) (*domain.SearchPage, error) {
	params := url.Values{}
	params.Set("search_type", "scan")
	params.Set("limit", fmt.Sprintf("%d", s.pageSize))
	if scrollToken != nil {
		params.Set("scroll_id", *scrollToken)
	}
	endpoint := fmt.Sprintf("%s/users/%d/items/search?%s", s.baseURL, userID, params.Encode())

	var resp searchResponse
	err := s.gw.Execute(ctx, func(ctx context.Context) error {
		return s.getJSON(ctx, endpoint, scrollToken != nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("search page: %w", err)
	}

	return &domain.SearchPage{
		ItemIDs:     resp.Results,
		ScrollToken: resp.ScrollID,
		Total:       resp.Paging.Total,
	}, nil
}

// FetchItems retrieves item details through the batch multiget endpoint,
// batchSize ids per call. Items whose entry carries a non-200 code are
// returned in failedIDs; they never abort the batch.
func (s *Source) FetchItems(ctx context.Context, ids []string) ([]domain.ItemRecord, []string, error) {
	var (
		records   []domain.ItemRecord
		failedIDs []string
	)

	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		endpoint := fmt.Sprintf("%s/items?ids=%s", s.baseURL, strings.Join(chunk, ","))

		var entries []multigetEntry
		err := s.gw.Execute(ctx, func(ctx context.Context) error {
			return s.getJSON(ctx, endpoint, false, &entries)
		})
		if err != nil {
			return records, failedIDs, fmt.Errorf("fetch items batch: %w", err)
		}

		for i, entry := range entries {
			if entry.Code != http.StatusOK {
				id := entry.Body.ID
				if id == "" && i < len(chunk) {
					id = chunk[i]
				}
				failedIDs = append(failedIDs, id)
				s.logger.Warn("item fetch failed within batch",
					"item_id", id,
					"code", entry.Code,
				)
				continue
			}
			records = append(records, s.transform(entry.Body))
		}
	}

	return records, failedIDs, nil
}

// CategoryName resolves a category id remotely. Best-effort callers tolerate
// the error.
func (s *Source) CategoryName(ctx context.Context, categoryID string) (string, error) {
	endpoint := fmt.Sprintf("%s/categories/%s", s.baseURL, url.PathEscape(categoryID))

	var resp categoryResponse
	err := s.gw.Execute(ctx, func(ctx context.Context) error {
		return s.getJSON(ctx, endpoint, false, &resp)
	})
	if err != nil {
		return "", fmt.Errorf("category %s: %w", categoryID, err)
	}
	return resp.Name, nil
}

// getJSON runs one GET and classifies failures: 401/403 as expired
// credentials, 400/404 on a scroll request as a stale cursor, 429 and 5xx
// as transient.
func (s *Source) getJSON(ctx context.Context, endpoint string, scrolled bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Retryable(fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrAuthExpired
	case scrolled && (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound):
		return domain.ErrStaleCursor
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return domain.Retryable(fmt.Errorf("upstream status %d", resp.StatusCode))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (s *Source) transform(body itemBody) domain.ItemRecord {
	return domain.ItemRecord{
		ID:                body.ID,
		Title:             body.Title,
		SKU:               extractSKU(body),
		AvailableQuantity: body.AvailableQuantity,
		Price:             decimal.NewFromFloat(body.Price),
		Status:            mapStatus(body.Status),
		Permalink:         body.Permalink,
		CategoryID:        body.CategoryID,
		ListingType:       body.ListingTypeID,
		HealthScore:       body.Health,
	}
}

// extractSKU applies the fallback chain: the seller custom field first, then
// the structured attribute list by known ids, then by name substring. A
// missing SKU is a valid terminal state, not an error.
func extractSKU(body itemBody) *string {
	if body.SellerCustomField != nil && *body.SellerCustomField != "" {
		return body.SellerCustomField
	}
	for _, attr := range body.Attributes {
		if skuAttributeIDs[attr.ID] && attr.ValueName != nil && *attr.ValueName != "" {
			return attr.ValueName
		}
	}
	for _, attr := range body.Attributes {
		if strings.Contains(strings.ToLower(attr.Name), "sku") && attr.ValueName != nil && *attr.ValueName != "" {
			return attr.ValueName
		}
	}
	return nil
}

func mapStatus(raw string) domain.ProductStatus {
	switch raw {
	case "active":
		return domain.StatusActive
	case "paused":
		return domain.StatusPaused
	case "closed":
		return domain.StatusClosed
	default:
		return domain.StatusInactive
	}
}
