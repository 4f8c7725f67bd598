// Package backtest replays a golden cross strategy over daily history: buy
// when the fast moving average crosses above the slow one, sell on the
// reverse cross. Single position, all-in, no fees, no slippage.
package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/Rbh2733/Dashboard/internal/indicator"
	"github.com/Rbh2733/Dashboard/internal/model"
)

const (
	// DefaultStartingCash is the equity a replay starts with.
	DefaultStartingCash = 10_000.0
	// DefaultFastPeriod and DefaultSlowPeriod select the crossing averages.
	DefaultFastPeriod = 50
	DefaultSlowPeriod = 200

	// noLossProfitFactor stands in for an infinite profit factor when a run
	// closed no losing trade.
	noLossProfitFactor = 999.99
)

// Config holds the replay parameters. Zero values fall back to defaults.
type Config struct {
	StartingCash float64
	FastPeriod   int
	SlowPeriod   int
}

func (c Config) withDefaults() Config {
	if c.StartingCash == 0 {
		c.StartingCash = DefaultStartingCash
	}
	if c.FastPeriod == 0 {
		c.FastPeriod = DefaultFastPeriod
	}
	if c.SlowPeriod == 0 {
		c.SlowPeriod = DefaultSlowPeriod
	}
	return c
}

// Trade is one completed round trip. A position still open on the last bar
// is closed at the final close and recorded like any other trade.
type Trade struct {
	EntryDate  time.Time `json:"entry_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitDate   time.Time `json:"exit_date"`
	ExitPrice  float64   `json:"exit_price"`
	PnL        float64   `json:"pnl"`
	ReturnPct  float64   `json:"return_pct"`
	HoldDays   int       `json:"hold_days"`
}

// Result summarizes one replay.
type Result struct {
	Ticker           string      `json:"ticker"`
	StartingCash     float64     `json:"starting_cash"`
	FinalEquity      float64     `json:"final_equity"`
	TotalReturnPct   float64     `json:"total_return_pct"`
	BuyHoldReturnPct model.Ratio `json:"buy_hold_return_pct"`
	WinRate          float64     `json:"win_rate"`
	ProfitFactor     float64     `json:"profit_factor"`
	Trades           []Trade     `json:"trades"`
	Start            time.Time   `json:"start"`
	End              time.Time   `json:"end"`
}

// Run replays the crossover strategy over the bars and reports the trades
// and equity outcome next to a buy-and-hold reference.
func Run(ticker string, bars []model.Bar, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if cfg.StartingCash < 0 {
		return nil, fmt.Errorf("%w: starting cash %v", model.ErrInvalidParameter, cfg.StartingCash)
	}
	if cfg.FastPeriod < 1 || cfg.SlowPeriod < 1 || cfg.FastPeriod >= cfg.SlowPeriod {
		return nil, fmt.Errorf("%w: periods %d/%d", model.ErrInvalidParameter, cfg.FastPeriod, cfg.SlowPeriod)
	}
	if err := model.ValidateBars(bars); err != nil {
		return nil, err
	}
	if len(bars) < cfg.SlowPeriod {
		return nil, fmt.Errorf("%w: %d bars, need %d for the slow average", model.ErrInsufficientData, len(bars), cfg.SlowPeriod)
	}

	closes := model.Closes(bars)
	fast, err := indicator.SMA(closes, cfg.FastPeriod)
	if err != nil {
		return nil, err
	}
	slow, err := indicator.SMA(closes, cfg.SlowPeriod)
	if err != nil {
		return nil, err
	}
	crosses := indicator.Crossover(fast, slow)

	var (
		cash       = cfg.StartingCash
		shares     float64
		inPosition bool
		entryDate  time.Time
		entryPrice float64
		trades     []Trade
	)
	for i, c := range crosses {
		price := closes[i]
		switch {
		case c > 0 && !inPosition && price > 0:
			shares = cash / price
			cash = 0
			entryDate = bars[i].Date
			entryPrice = price
			inPosition = true
		case c < 0 && inPosition:
			cash = shares * price
			trades = append(trades, closeTrade(entryDate, entryPrice, bars[i].Date, price, shares))
			shares = 0
			inPosition = false
		}
	}

	last := bars[len(bars)-1]
	if inPosition {
		cash = shares * last.Close
		trades = append(trades, closeTrade(entryDate, entryPrice, last.Date, last.Close, shares))
	}

	res := &Result{
		Ticker:       ticker,
		StartingCash: cfg.StartingCash,
		FinalEquity:  cash,
		Trades:       trades,
		WinRate:      winRate(trades),
		ProfitFactor: profitFactor(trades),
		Start:        bars[0].Date,
		End:          last.Date,
	}
	if cfg.StartingCash > 0 {
		res.TotalReturnPct = (cash - cfg.StartingCash) / cfg.StartingCash * 100
	}
	if first := bars[0].Close; first > 0 {
		res.BuyHoldReturnPct = model.DefinedRatio((last.Close - first) / first * 100)
	} else {
		res.BuyHoldReturnPct = model.UndefinedRatio()
	}
	return res, nil
}

func closeTrade(entryDate time.Time, entryPrice float64, exitDate time.Time, exitPrice, shares float64) Trade {
	return Trade{
		EntryDate:  entryDate,
		EntryPrice: entryPrice,
		ExitDate:   exitDate,
		ExitPrice:  exitPrice,
		PnL:        shares * (exitPrice - entryPrice),
		ReturnPct:  (exitPrice - entryPrice) / entryPrice * 100,
		HoldDays:   int(exitDate.Sub(entryDate).Hours() / 24),
	}
}

// winRate is the fraction of trades closed with a profit.
func winRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.PnL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}

// profitFactor is gross profit over gross loss, capped when no trade lost.
func profitFactor(trades []Trade) float64 {
	var totalWin, totalLoss float64
	for _, t := range trades {
		if t.PnL > 0 {
			totalWin += t.PnL
		} else if t.PnL < 0 {
			totalLoss += math.Abs(t.PnL)
		}
	}
	if totalLoss == 0 {
		if totalWin > 0 {
			return noLossProfitFactor
		}
		return 0
	}
	return totalWin / totalLoss
}
