// Package cache keeps the planner's location list in Redis so new sessions
// do not each hit the planner service.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/eld-planner/backend/internal/domain"
)

const locationsKey = "eld-planner:locations"

// LocationLister is the source of truth the cache reads through to.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// Locations is a read-through cache over a LocationLister. Redis failures
// degrade to calling the source directly; they are never returned.
type Locations struct {
	source LocationLister
	cache  *cache.Cache[string]
}

// NewLocations caches source in client with entries expiring after ttl.
func NewLocations(client *redis.Client, source LocationLister, ttl time.Duration) *Locations {
	s := redisstore.NewRedis(client, store.WithExpiration(ttl))
	return &Locations{
		source: source,
		cache:  cache.New[string](s),
	}
}

// ListLocations returns the cached list, loading it from the source on a miss.
func (l *Locations) ListLocations(ctx context.Context) ([]domain.Location, error) {
	raw, err := l.cache.Get(ctx, locationsKey)
	if err == nil {
		var locs []domain.Location
		if jerr := json.Unmarshal([]byte(raw), &locs); jerr == nil {
			return locs, nil
		}
		slog.WarnContext(ctx, "discarding unreadable cached locations")
	} else if !errors.Is(err, store.NotFound{}) {
		slog.WarnContext(ctx, "location cache read failed", "error", err)
	}

	locs, err := l.source.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache.Locations.ListLocations: %w", err)
	}

	b, err := json.Marshal(locs)
	if err == nil {
		err = l.cache.Set(ctx, locationsKey, string(b))
	}
	if err != nil {
		slog.WarnContext(ctx, "location cache write failed", "error", err)
	}
	return locs, nil
}

// Invalidate drops the cached list.
func (l *Locations) Invalidate(ctx context.Context) error {
	if err := l.cache.Delete(ctx, locationsKey); err != nil && !errors.Is(err, store.NotFound{}) {
		return fmt.Errorf("cache.Locations.Invalidate: %w", err)
	}
	return nil
}
