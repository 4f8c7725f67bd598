// Package market fetches daily history and quotes from upstream sources and
// caches them for the analytics layers.
package market

import "github.com/Rbh2733/Dashboard/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	DailyBars(ticker string, days int) ([]model.Bar, error)
	Quote(ticker string) (*model.Quote, error)
	Name() string
}
