package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cached wraps a Provider with a short-lived Redis cache. Only quotes are
// cached, never balances; lookup failures are not cached.
type Cached struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCached(inner Provider, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *Cached) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := fmt.Sprintf("stock:%s:quote", symbol)

	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var q Quote
		if err := json.Unmarshal([]byte(cached), &q); err == nil {
			return q, nil
		}
	}

	q, err := c.inner.Lookup(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	if data, err := json.Marshal(q); err == nil {
		// Best effort; a cache write failure must not fail the lookup.
		c.rdb.Set(ctx, key, data, c.ttl)
	}

	return q, nil
}
