// Package fixture is a deterministic, offline catalog source. It generates
// the same catalog for a given user id on every run, which makes it usable
// both for local development without credentials and for tests.
package fixture

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"catalog_syncer/internal/domain"
)

const SourceID = "fixture"

type Source struct {
	totalItems int
	pageSize   int
}

func New(totalItems, pageSize int) *Source {
	if totalItems <= 0 {
		totalItems = 1230
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Source{totalItems: totalItems, pageSize: pageSize}
}

func (s *Source) ID() string { return SourceID }

func (s *Source) SearchPage(_ context.Context, userID int64, scrollToken *string) (*domain.SearchPage, error) {
	offset := 0
	if scrollToken != nil {
		parsed, err := parseToken(*scrollToken)
		if err != nil {
			return nil, domain.ErrStaleCursor
		}
		offset = parsed
	}

	end := offset + s.pageSize
	if end > s.totalItems {
		end = s.totalItems
	}

	ids := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		ids = append(ids, itemID(userID, i))
	}

	page := &domain.SearchPage{
		ItemIDs: ids,
		Total:   s.totalItems,
	}
	if end < s.totalItems {
		token := fmt.Sprintf("fx-%d", end)
		page.ScrollToken = &token
	}
	return page, nil
}

func (s *Source) FetchItems(_ context.Context, ids []string) ([]domain.ItemRecord, []string, error) {
	records := make([]domain.ItemRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, generate(id))
	}
	return records, nil, nil
}

func (s *Source) CategoryName(_ context.Context, categoryID string) (string, error) {
	return "Category " + categoryID, nil
}

func itemID(userID int64, index int) string {
	return fmt.Sprintf("FIX%d-%06d", userID, index)
}

func parseToken(token string) (int, error) {
	raw, ok := strings.CutPrefix(token, "fx-")
	if !ok {
		return 0, fmt.Errorf("malformed token %q", token)
	}
	return strconv.Atoi(raw)
}

// generate derives every field from a hash of the item id so repeated
// fetches of the same item are identical.
func generate(id string) domain.ItemRecord {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	n := h.Sum64()

	statuses := []domain.ProductStatus{
		domain.StatusActive, domain.StatusActive, domain.StatusActive,
		domain.StatusActive, domain.StatusPaused, domain.StatusClosed,
	}

	rec := domain.ItemRecord{
		ID:                id,
		Title:             "Fixture Item " + id,
		AvailableQuantity: int(n % 25),
		Price:             decimal.NewFromInt(int64(n % 100000)).Div(decimal.NewFromInt(100)),
		Status:            statuses[n%uint64(len(statuses))],
		Permalink:         "https://example.test/items/" + id,
		CategoryID:        fmt.Sprintf("CAT%d", n%7),
		ListingType:       "gold_special",
		HealthScore:       float64(n%100) / 100,
	}
	if n%5 != 0 {
		sku := fmt.Sprintf("SKU-%04d", n%10000)
		rec.SKU = &sku
	}
	return rec
}
