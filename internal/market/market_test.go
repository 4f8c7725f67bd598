package market

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

func TestMockFetcherDeterministic(t *testing.T) {
	m := &MockFetcher{}
	first, err := m.DailyBars("AAPL", 120)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	second, err := m.DailyBars("AAPL", 120)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if len(first) != 120 || len(second) != 120 {
		t.Fatalf("lengths = %d/%d, want 120", len(first), len(second))
	}
	for i := range first {
		if first[i].Close != second[i].Close {
			t.Fatalf("series diverged at bar %d: %v vs %v", i, first[i].Close, second[i].Close)
		}
	}

	other, err := m.DailyBars("MSFT", 120)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if other[10].Close == first[10].Close {
		t.Error("different tickers produced the same walk")
	}
}

func TestMockFetcherSeriesIsValid(t *testing.T) {
	m := &MockFetcher{Price: 100}
	bars, err := m.DailyBars("TEST", 252)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if err := model.ValidateBars(bars); err != nil {
		t.Fatalf("generated series invalid: %v", err)
	}
	for i, b := range bars {
		if b.Low >= b.High || b.Close <= 0 {
			t.Fatalf("bar %d out of shape: %+v", i, b)
		}
	}
}

func TestMockFetcherFixtures(t *testing.T) {
	fixed := []model.Bar{{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 42, Volume: 1}}
	m := &MockFetcher{
		DailyData: map[string][]model.Bar{"FIX": fixed},
		Quotes:    map[string]float64{"FIX": 43.5},
	}

	bars, err := m.DailyBars("FIX", 10)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if len(bars) != 1 || bars[0].Close != 42 {
		t.Errorf("fixture bars = %+v", bars)
	}

	q, err := m.Quote("FIX")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Price != 43.5 || q.Ticker != "FIX" {
		t.Errorf("fixture quote = %+v", q)
	}
}

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (f *countingFetcher) Name() string { return "counting" }

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *countingFetcher) DailyBars(ticker string, days int) ([]model.Bar, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("%w: upstream down", model.ErrFetchFailed)
	}
	return []model.Bar{{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: float64(n), Volume: 1}}, nil
}

func (f *countingFetcher) Quote(ticker string) (*model.Quote, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	return &model.Quote{Ticker: ticker, Price: float64(n), At: time.Now()}, nil
}

func TestCacheServesRepeatCalls(t *testing.T) {
	upstream := &countingFetcher{}
	c := NewCache(upstream, time.Minute)

	first, err := c.DailyBars("AAPL", 30)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	second, err := c.DailyBars("AAPL", 30)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if upstream.count() != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.count())
	}
	if first[0].Close != second[0].Close {
		t.Error("cache returned different data on the second call")
	}
}

func TestCacheExpiry(t *testing.T) {
	upstream := &countingFetcher{}
	c := NewCache(upstream, time.Minute)

	if _, err := c.DailyBars("AAPL", 30); err != nil {
		t.Fatalf("DailyBars: %v", err)
	}

	c.mu.Lock()
	for k, e := range c.entries {
		e.fetchedAt = e.fetchedAt.Add(-2 * time.Minute)
		c.entries[k] = e
	}
	c.mu.Unlock()

	bars, err := c.DailyBars("AAPL", 30)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if upstream.count() != 2 {
		t.Errorf("upstream calls = %d, want a refetch after expiry", upstream.count())
	}
	if bars[0].Close != 2 {
		t.Errorf("Close = %v, want the refreshed value 2", bars[0].Close)
	}
}

func TestCacheKeysAreIndependent(t *testing.T) {
	upstream := &countingFetcher{}
	c := NewCache(upstream, time.Minute)

	if _, err := c.DailyBars("AAPL", 30); err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if _, err := c.DailyBars("AAPL", 60); err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if _, err := c.Quote("AAPL"); err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if upstream.count() != 3 {
		t.Errorf("upstream calls = %d, want one per key", upstream.count())
	}
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	upstream := &countingFetcher{fail: true}
	c := NewCache(upstream, time.Minute)

	if _, err := c.DailyBars("AAPL", 30); !errors.Is(err, model.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	if _, err := c.DailyBars("AAPL", 30); !errors.Is(err, model.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
	if upstream.count() != 2 {
		t.Errorf("upstream calls = %d, failures must not be cached", upstream.count())
	}
}

func TestCacheCollapsesConcurrentMisses(t *testing.T) {
	upstream := &countingFetcher{}
	c := NewCache(upstream, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.DailyBars("AAPL", 30); err != nil {
				t.Errorf("DailyBars: %v", err)
			}
		}()
	}
	wg.Wait()

	if upstream.count() != 1 {
		t.Errorf("upstream calls = %d, want concurrent misses collapsed into 1", upstream.count())
	}
}
