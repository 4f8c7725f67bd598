package scanner

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/indicator"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/pattern"
)

const (
	// MinHistoryBars is the least history a ticker needs before any scan
	// will consider it.
	MinHistoryBars = 50

	// relVolumePeriod is the trailing average window for relative volume,
	// excluding the current bar.
	relVolumePeriod = 20
	// SurgeThreshold is the relative volume that counts as a surge.
	SurgeThreshold = 2.0

	// crossMinBars is the least history needed to trust a 50/200 cross.
	crossMinBars = 200
	// crossLookback is how many recent bars are searched for a cross.
	crossLookback = 5

	oversoldRSI   = 30.0
	overboughtRSI = 70.0
)

// BuildSnapshot condenses one ticker's daily history into the signal record
// every scan type evaluates. Undefined numeric fields are NaN.
func BuildSnapshot(ticker string, bars []model.Bar) (*model.Snapshot, error) {
	if len(bars) < MinHistoryBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", model.ErrInsufficientData, ticker, len(bars), MinHistoryBars)
	}

	closes := model.Closes(bars)
	n := len(bars)
	snap := &model.Snapshot{
		Ticker:         ticker,
		Price:          closes[n-1],
		RSI:            math.NaN(),
		RSISignal:      model.RSINeutral,
		RelativeVolume: math.NaN(),
		Cross:          model.CrossNone,
		PctFrom52wHigh: math.NaN(),
		PriceChange5d:  math.NaN(),
		PriceChange20d: math.NaN(),
		Bars:           n,
	}

	snap.RelativeVolume = relativeVolume(bars)
	snap.VolumeSurge = !math.IsNaN(snap.RelativeVolume) && snap.RelativeVolume >= SurgeThreshold

	if rsi, err := indicator.RSI(closes, indicator.DefaultRSIPeriod); err == nil {
		last := rsi[len(rsi)-1]
		if !math.IsNaN(last) {
			snap.RSI = last
			switch {
			case last < oversoldRSI:
				snap.RSISignal = model.RSIOversold
			case last > overboughtRSI:
				snap.RSISignal = model.RSIOverbought
			}
		}
	}

	if n >= crossMinBars {
		snap.Cross = recentCross(indicator.GoldenDeathCross(closes))
	}

	if stats, err := indicator.Range52Week(bars); err == nil {
		snap.Near52wHigh = stats.NearHigh
		snap.PctFrom52wHigh = stats.PctFromHigh
	}

	status := pattern.CheckBreakout(bars)
	snap.InConsolidation = status.InConsolidation
	snap.BreakingOut = status.BreakingOut

	if n > 5 {
		snap.PriceChange5d = pctChange(closes[n-1], closes[n-6])
	}
	if n > 20 {
		snap.PriceChange20d = pctChange(closes[n-1], closes[n-21])
	}
	return snap, nil
}

// relativeVolume is the latest volume over the trailing average, NaN when
// there is not enough history or no volume traded.
func relativeVolume(bars []model.Bar) float64 {
	if len(bars) < relVolumePeriod+1 {
		return math.NaN()
	}
	var sum float64
	for _, b := range bars[len(bars)-relVolumePeriod-1 : len(bars)-1] {
		sum += b.Volume
	}
	avg := sum / relVolumePeriod
	if avg == 0 {
		return math.NaN()
	}
	return bars[len(bars)-1].Volume / avg
}

// recentCross reports a golden or death cross within the lookback window,
// golden taking precedence.
func recentCross(crosses []int) model.CrossSignal {
	start := len(crosses) - crossLookback
	if start < 0 {
		start = 0
	}
	signal := model.CrossNone
	for _, c := range crosses[start:] {
		if c > 0 {
			return model.CrossGolden
		}
		if c < 0 {
			signal = model.CrossDeath
		}
	}
	return signal
}

func pctChange(current, prior float64) float64 {
	if prior == 0 || math.IsNaN(current) || math.IsNaN(prior) {
		return math.NaN()
	}
	return (current - prior) / prior * 100
}
