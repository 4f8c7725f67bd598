package portfolio

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// statsHistoryDays is how far back the analyzer reaches for the daily value
// series behind beta, Sharpe and drawdown.
const statsHistoryDays = 365

// PriceProvider supplies the quotes and daily history the analyzer values
// holdings with.
type PriceProvider interface {
	DailyBars(ticker string, days int) ([]model.Bar, error)
	Quote(ticker string) (*model.Quote, error)
}

// Analyzer values a set of holdings at market and derives the portfolio
// risk statistics. Per-ticker fetch failures are logged and tolerated;
// statistics that cannot be computed stay undefined.
type Analyzer struct {
	provider PriceProvider
	riskFree float64
	log      zerolog.Logger
}

// NewAnalyzer creates an Analyzer. riskFree is the annual risk-free rate
// used by the Sharpe ratio.
func NewAnalyzer(provider PriceProvider, riskFree float64, log zerolog.Logger) *Analyzer {
	return &Analyzer{provider: provider, riskFree: riskFree, log: log}
}

// Summary prices the holdings and builds the portfolio summary. When
// benchmark is non-empty it also computes beta against that ticker plus
// Sharpe and max drawdown from the portfolio's own value series.
func (a *Analyzer) Summary(holdings []model.Holding, benchmark string) (*model.PortfolioSummary, error) {
	if len(holdings) == 0 {
		s := Summarize(nil, time.Now())
		return &s, nil
	}

	prices := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		if _, ok := prices[h.Ticker]; ok {
			continue
		}
		q, err := a.provider.Quote(h.Ticker)
		if err != nil {
			a.log.Warn().Err(err).Str("ticker", h.Ticker).Msg("quote failed")
			continue
		}
		prices[h.Ticker] = q.Price
	}

	positions, skipped := BuildPositions(holdings, prices)
	if len(skipped) > 0 {
		a.log.Warn().Strs("tickers", skipped).Msg("positions skipped, no price")
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no holdings could be priced", model.ErrFetchFailed)
	}

	summary := Summarize(positions, time.Now())
	if benchmark != "" {
		a.riskStats(&summary, holdings, benchmark)
	}
	return &summary, nil
}

// riskStats fills Beta, Sharpe and MaxDrawdown on the summary where the
// data supports them.
func (a *Analyzer) riskStats(s *model.PortfolioSummary, holdings []model.Holding, benchmark string) {
	s.Benchmark = benchmark

	history := make(map[string][]model.Bar, len(holdings))
	for _, h := range holdings {
		if _, ok := history[h.Ticker]; ok {
			continue
		}
		bars, err := a.provider.DailyBars(h.Ticker, statsHistoryDays)
		if err != nil {
			a.log.Warn().Err(err).Str("ticker", h.Ticker).Msg("history fetch failed")
			continue
		}
		history[h.Ticker] = bars
	}

	values := ValueSeries(holdings, history)
	if len(values) == 0 {
		a.log.Debug().Msg("no overlapping history, risk stats skipped")
		return
	}

	if bench, err := a.provider.DailyBars(benchmark, statsHistoryDays); err != nil {
		a.log.Warn().Err(err).Str("ticker", benchmark).Msg("benchmark fetch failed")
	} else if beta, err := Beta(values, bench); err != nil {
		a.log.Debug().Err(err).Msg("beta undefined")
	} else {
		s.Beta = model.DefinedRatio(beta)
	}

	if sharpe, err := Sharpe(Returns(values), a.riskFree); err != nil {
		a.log.Debug().Err(err).Msg("sharpe undefined")
	} else {
		s.Sharpe = model.DefinedRatio(sharpe)
	}

	if dd, err := MaxDrawdown(values); err != nil {
		a.log.Debug().Err(err).Msg("drawdown undefined")
	} else {
		s.MaxDrawdown = dd
	}
}
