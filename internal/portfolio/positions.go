package portfolio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rbh2733/Dashboard/internal/model"
)

var hundred = decimal.NewFromInt(100)

// BuildPositions values holdings at the supplied current prices. Zero-share
// holdings and holdings without a quote are skipped; the skipped tickers are
// returned so callers can surface them.
func BuildPositions(holdings []model.Holding, prices map[string]float64) ([]model.Position, []string) {
	positions := make([]model.Position, 0, len(holdings))
	var skipped []string

	for _, h := range holdings {
		if h.Shares.IsZero() {
			continue
		}
		price, ok := prices[h.Ticker]
		if !ok {
			skipped = append(skipped, h.Ticker)
			continue
		}

		current := decimal.NewFromFloat(price)
		p := model.Position{
			Ticker:        h.Ticker,
			Shares:        h.Shares,
			PurchasePrice: h.PurchasePrice,
			CurrentPrice:  current,
			CostBasis:     h.Shares.Mul(h.PurchasePrice),
			MarketValue:   h.Shares.Mul(current),
		}
		p.UnrealizedPL = p.MarketValue.Sub(p.CostBasis)
		if !p.CostBasis.IsZero() {
			pct := p.UnrealizedPL.Div(p.CostBasis).Mul(hundred)
			p.UnrealizedPLPct = model.DefinedRatio(pct.InexactFloat64())
		}
		positions = append(positions, p)
	}

	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.MarketValue)
	}
	if total.IsPositive() {
		for i := range positions {
			positions[i].Weight = positions[i].MarketValue.Div(total).InexactFloat64()
		}
	}
	return positions, skipped
}

// Summarize totals the positions. Risk statistics (beta, Sharpe, drawdown)
// need price history and are attached separately by the caller.
func Summarize(positions []model.Position, asOf time.Time) model.PortfolioSummary {
	s := model.PortfolioSummary{
		Positions:  positions,
		TotalValue: decimal.Zero,
		TotalCost:  decimal.Zero,
		TotalPL:    decimal.Zero,
		AsOf:       asOf,
	}
	for _, p := range positions {
		s.TotalValue = s.TotalValue.Add(p.MarketValue)
		s.TotalCost = s.TotalCost.Add(p.CostBasis)
	}
	s.TotalPL = s.TotalValue.Sub(s.TotalCost)
	if s.TotalCost.IsPositive() {
		pct := s.TotalPL.Div(s.TotalCost).Mul(hundred)
		s.TotalPLPct = model.DefinedRatio(pct.InexactFloat64())
	}
	return s
}
