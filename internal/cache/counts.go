// Package cache memoizes ancestor counts in Redis.
//
// A commit's ancestor set is fixed by its content hash, so a computed count
// never goes stale and entries need no invalidation. The cache is strictly
// an optimization layer: Redis being unreachable degrades to the underlying
// counter, while genuine counter failures pass through untouched.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lineage-sh/lineage/internal/graph"
	"github.com/lineage-sh/lineage/internal/object"
)

// Counts wraps an AncestorCounter with a Redis read-through cache.
type Counts struct {
	client *redis.Client
	next   graph.AncestorCounter
	ttl    time.Duration // 0 means no expiry
}

var _ graph.AncestorCounter = (*Counts)(nil)

// Option configures a Counts cache.
type Option func(*Counts)

// WithTTL expires cached counts after d. The default is no expiry, which is
// sound because ancestor sets are immutable; a TTL only bounds memory.
func WithTTL(d time.Duration) Option {
	return func(c *Counts) {
		c.ttl = d
	}
}

// NewCounts creates a read-through ancestor-count cache in front of next.
func NewCounts(client *redis.Client, next graph.AncestorCounter, opts ...Option) *Counts {
	c := &Counts{client: client, next: next}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(repositoryID string, oid object.Oid) string {
	return "ancestors:" + repositoryID + ":" + oid.String()
}

// CountAncestors serves the count from Redis when present, delegating on a
// miss and storing the result. Cache-layer failures are logged and bypassed;
// they never turn a computable count into an error.
func (c *Counts) CountAncestors(ctx context.Context, repositoryID string, oid object.Oid) (int64, error) {
	key := cacheKey(repositoryID, oid)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if n, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return n, nil
		}
		// An unparseable entry means someone else wrote the key; recompute.
		slog.Warn("discarding malformed cached ancestor count", "key", key, "value", cached)
	case errors.Is(err, redis.Nil):
		// Miss.
	default:
		slog.Warn("ancestor count cache unavailable, falling through", "key", key, "error", err)
	}

	n, err := c.next.CountAncestors(ctx, repositoryID, oid)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatInt(n, 10), c.ttl).Err(); err != nil {
		slog.Warn("failed to cache ancestor count", "key", key, "error", err)
	}

	return n, nil
}
