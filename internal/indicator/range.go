package indicator

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// nearHighPct is how close to the trailing high (in percent) still counts
// as "near".
const nearHighPct = 5.0

// RangeStats describes where the latest close sits inside a trailing
// high/low range.
type RangeStats struct {
	High        float64
	Low         float64
	PctFromHigh float64
	PctFromLow  float64
	Position    float64 // 0.0 ~ 1.0
	NearHigh    bool
}

// Range52Week scans the most recent 252 trading days and returns the range
// statistics for the latest close.
func Range52Week(bars []model.Bar) (RangeStats, error) {
	return RangeN(bars, 252)
}

// RangeN computes range statistics over the most recent lookback bars,
// using the whole series when it is shorter.
func RangeN(bars []model.Bar, lookback int) (RangeStats, error) {
	if lookback <= 0 {
		return RangeStats{}, fmt.Errorf("%w: lookback must be positive", model.ErrInvalidParameter)
	}
	if len(bars) == 0 {
		return RangeStats{}, fmt.Errorf("%w: no bars provided", model.ErrInsufficientData)
	}

	n := len(bars)
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}

	current := bars[n-1].Close
	stats := RangeStats{High: high, Low: low}
	if high > 0 {
		stats.PctFromHigh = (current - high) / high * 100
	}
	if low > 0 {
		stats.PctFromLow = (current - low) / low * 100
	}
	stats.Position = rangePosition(current, high, low)
	stats.NearHigh = stats.PctFromHigh > -nearHighPct
	return stats, nil
}

// rangePosition returns where current sits within [low, high], clamped to
// 0.0 ~ 1.0. A degenerate range reads as the midpoint.
func rangePosition(current, high, low float64) float64 {
	if high == low {
		return 0.5
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
