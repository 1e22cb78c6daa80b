package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uniqverse/marketplace-api/pkg/log"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
)

// Store is a TTL key/value store holding JSON encoded values.
type Store interface {
	// Get decodes the value stored under key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds a cache key from a prefix and the query parameters that shape the value.
func Key(prefix string, params ...any) string {
	if len(params) == 0 {
		return prefix
	}

	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ":")
}

// ReadThrough returns the cached value for key, or runs load and stores its result.
// The boolean reports whether the value came from the cache.
// Store failures are logged and never fail the call.
func ReadThrough[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, bool, error) {
	logger := log.ForContext(ctx)

	var cached T
	found, err := store.Get(ctx, key, &cached)
	if err != nil {
		logger.WithError(err).Warnf("cache read failed for %s", key)
	}
	if found && err == nil {
		metrics.IncCache(prefixOf(key), metrics.CacheHit)
		return cached, true, nil
	}
	metrics.IncCache(prefixOf(key), metrics.CacheMiss)

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if err := store.Set(ctx, key, value, ttl); err != nil {
		logger.WithError(err).Warnf("cache write failed for %s", key)
	}

	return value, false, nil
}

func prefixOf(key string) string {
	if i := strings.Index(key, ":"); i > 0 {
		return key[:i]
	}
	return key
}
