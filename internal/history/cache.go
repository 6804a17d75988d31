package history

import (
	"context"
	"sync"
	"time"

	"github.com/gamma-omg/backtester/internal/market"
)

type Source interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error)
}

const dayFormat = "2006-01-02"

type cacheKey struct {
	symbol string
	start  string
	end    string
}

type cacheEntry struct {
	series    *market.Series
	fetchedAt time.Time
}

// CachedProvider memoizes history fetches per (symbol, date range) with an
// explicit expiry check. Expired entries are refetched on access.
type CachedProvider struct {
	src     Source
	ttl     time.Duration
	now     func() time.Time
	entries map[cacheKey]cacheEntry
	mu      sync.RWMutex
}

func NewCachedProvider(src Source, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		src:     src,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedProvider) GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error) {
	key := cacheKey{
		symbol: symbol,
		start:  start.Format(dayFormat),
		end:    end.Format(dayFormat),
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.series, nil
	}

	series, err := c.src.GetHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{series: series, fetchedAt: c.now()}
	c.mu.Unlock()

	return series, nil
}
