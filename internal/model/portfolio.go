package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one portfolio entry as loaded from the holdings CSV.
type Holding struct {
	Ticker        string          `json:"ticker"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  time.Time       `json:"purchase_date"`
}

// Position is a holding valued at its current market price.
type Position struct {
	Ticker          string          `json:"ticker"`
	Shares          decimal.Decimal `json:"shares"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	MarketValue     decimal.Decimal `json:"market_value"`
	UnrealizedPL    decimal.Decimal `json:"unrealized_pl"`
	UnrealizedPLPct Ratio           `json:"unrealized_pl_pct"`
	Weight          float64         `json:"weight"`
}

// Drawdown is the largest peak-to-trough decline of a value series, as a
// negative percentage.
type Drawdown struct {
	Pct    float64   `json:"pct"`
	Peak   time.Time `json:"peak"`
	Trough time.Time `json:"trough"`
}

// PortfolioSummary aggregates positions and risk statistics for display.
type PortfolioSummary struct {
	Positions   []Position      `json:"positions"`
	TotalValue  decimal.Decimal `json:"total_value"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalPL     decimal.Decimal `json:"total_pl"`
	TotalPLPct  Ratio           `json:"total_pl_pct"`
	Beta        Ratio           `json:"beta"`
	Sharpe      Ratio           `json:"sharpe"`
	MaxDrawdown *Drawdown       `json:"max_drawdown,omitempty"`
	Benchmark   string          `json:"benchmark,omitempty"`
	AsOf        time.Time       `json:"as_of"`
}
