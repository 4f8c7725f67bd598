package market

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Without fixtures it serves a walk seeded by the ticker, so the same ticker
// always gets the same series.
type MockFetcher struct {
	Price     float64 // base price when no fixture is set
	DailyData map[string][]model.Bar
	Quotes    map[string]float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) DailyBars(ticker string, days int) ([]model.Bar, error) {
	if bars, ok := m.DailyData[ticker]; ok {
		return bars, nil
	}
	return generateBars(ticker, m.basePrice(ticker), days), nil
}

func (m *MockFetcher) Quote(ticker string) (*model.Quote, error) {
	if price, ok := m.Quotes[ticker]; ok {
		return &model.Quote{Ticker: ticker, Price: price, At: time.Now().UTC()}, nil
	}
	bars, err := m.DailyBars(ticker, 30)
	if err != nil {
		return nil, err
	}
	last := bars[len(bars)-1]
	return &model.Quote{Ticker: ticker, Price: last.Close, At: last.Date}, nil
}

func (m *MockFetcher) basePrice(ticker string) float64 {
	if m.Price > 0 {
		return m.Price
	}
	return 40 + float64(tickerSeed(ticker)%240)
}

func tickerSeed(ticker string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return h.Sum64()
}

func generateBars(ticker string, base float64, count int) []model.Bar {
	rng := rand.New(rand.NewSource(int64(tickerSeed(ticker))))
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -count)
	price := base
	bars := make([]model.Bar, count)
	for i := range bars {
		drift := (rng.Float64() - 0.48) * 0.02
		price *= 1 + drift
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.998,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 1e6 * (0.5 + rng.Float64()),
		}
	}
	return bars
}
