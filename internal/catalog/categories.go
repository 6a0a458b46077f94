// Package catalog resolves category identifiers to display names. Names are
// a correctness nicety for presentation: resolution is best effort and never
// blocks or fails the write path that asked for it.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// staticNames covers the categories this seller's catalog actually uses.
// The full marketplace tree has thousands of entries; anything missing here
// falls through to the cache and then the remote lookup.
var staticNames = map[string]string{
	"CAT0":    "Home & Garden",
	"CAT1":    "Electronics",
	"CAT2":    "Clothing & Accessories",
	"CAT3":    "Sports & Outdoors",
	"CAT4":    "Toys & Games",
	"CAT5":    "Health & Beauty",
	"CAT6":    "Automotive Parts",
	"MLA1055": "Cell Phones",
	"MLA1648": "Computers",
	"MLA1144": "Video Game Consoles",
	"MLA1039": "Cameras & Accessories",
	"MLA1574": "Home Appliances",
	"MLA1403": "Food & Drinks",
	"MLA1071": "Pet Supplies",
	"MLA1182": "Musical Instruments",
	"MLA3025": "Books & Magazines",
	"MLA1499": "Industrial Equipment",
	"MLA1459": "Real Estate Services",
	"MLA1743": "Vehicle Accessories",
	"MLA1367": "Antiques & Collectibles",
}

// RemoteLookup is the fallback path, normally the marketplace source going
// through the rate-limited gateway.
type RemoteLookup interface {
	CategoryName(ctx context.Context, categoryID string) (string, error)
}

type Resolver struct {
	remote RemoteLookup
	cache  *redis.Client
	logger *slog.Logger
}

// NewResolver builds a resolver; cache may be nil when redis is not
// configured.
func NewResolver(remote RemoteLookup, cache *redis.Client, logger *slog.Logger) *Resolver {
	return &Resolver{
		remote: remote,
		cache:  cache,
		logger: logger.With("component", "categories"),
	}
}

// Resolve tries the static table, then the cache, then the remote lookup.
// On total failure it reports ok=false and the caller leaves the name unset;
// the next reconcile of the same product retries naturally.
func (r *Resolver) Resolve(ctx context.Context, categoryID string) (string, bool) {
	if categoryID == "" {
		return "", false
	}
	if name, ok := staticNames[categoryID]; ok {
		return name, true
	}

	cacheKey := "category:" + categoryID
	if r.cache != nil {
		name, err := r.cache.Get(ctx, cacheKey).Result()
		if err == nil && name != "" {
			return name, true
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			r.logger.Debug("category cache read failed", "category_id", categoryID, "error", err)
		}
	}

	if r.remote == nil {
		return "", false
	}
	name, err := r.remote.CategoryName(ctx, categoryID)
	if err != nil || name == "" {
		r.logger.Debug("remote category lookup failed", "category_id", categoryID, "error", err)
		return "", false
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, name, cacheTTL).Err(); err != nil {
			r.logger.Debug("category cache write failed", "category_id", categoryID, "error", err)
		}
	}
	return name, true
}
