package market

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// DefaultCacheTTL is how long fetched data stays fresh when the config does
// not say otherwise.
const DefaultCacheTTL = 5 * time.Minute

type cacheKey struct {
	ticker string
	days   int
	kind   string
}

type cacheEntry struct {
	bars      []model.Bar
	quote     *model.Quote
	fetchedAt time.Time
}

// Cache wraps a Fetcher with a TTL cache keyed by (ticker, days, kind).
// Concurrent misses on the same key collapse into one upstream call.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration

	sf singleflight.Group

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// NewCache wraps the fetcher. A non-positive ttl falls back to the default.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *Cache) Name() string { return c.fetcher.Name() }

// DailyBars serves from cache when fresh, otherwise fetches once and shares
// the result with every concurrent waiter.
func (c *Cache) DailyBars(ticker string, days int) ([]model.Bar, error) {
	key := cacheKey{ticker: ticker, days: days, kind: "daily"}
	if e, ok := c.lookup(key); ok {
		return e.bars, nil
	}
	v, err, _ := c.sf.Do(fmt.Sprintf("daily:%s:%d", ticker, days), func() (interface{}, error) {
		if e, ok := c.lookup(key); ok {
			return e.bars, nil
		}
		bars, err := c.fetcher.DailyBars(ticker, days)
		if err != nil {
			return nil, err
		}
		c.store(key, cacheEntry{bars: bars})
		return bars, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Bar), nil
}

// Quote serves the latest price, cached under its own kind.
func (c *Cache) Quote(ticker string) (*model.Quote, error) {
	key := cacheKey{ticker: ticker, kind: "quote"}
	if e, ok := c.lookup(key); ok {
		return e.quote, nil
	}
	v, err, _ := c.sf.Do("quote:"+ticker, func() (interface{}, error) {
		if e, ok := c.lookup(key); ok {
			return e.quote, nil
		}
		quote, err := c.fetcher.Quote(ticker)
		if err != nil {
			return nil, err
		}
		c.store(key, cacheEntry{quote: quote})
		return quote, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Quote), nil
}

func (c *Cache) lookup(key cacheKey) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.fetchedAt) > c.ttl {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) store(key cacheKey, e cacheEntry) {
	e.fetchedAt = time.Now()
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}
