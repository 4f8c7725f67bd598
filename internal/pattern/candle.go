package pattern

import (
	"math"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// Label is a categorical candlestick or chart pattern name.
type Label string

const (
	LabelDoji             Label = "doji"
	LabelBullishEngulfing Label = "bullish_engulfing"
	LabelBearishEngulfing Label = "bearish_engulfing"
	LabelHammer           Label = "hammer"
	LabelShootingStar     Label = "shooting_star"
)

const (
	// dojiBodyPct is the maximum body size as a percentage of the candle
	// range for a doji.
	dojiBodyPct = 0.1
	// shadowRatio is the minimum shadow-to-body ratio for hammers and
	// shooting stars.
	shadowRatio = 2.0
	// smallBodyFrac is the maximum body size as a fraction of the candle
	// range for single-wick patterns.
	smallBodyFrac = 0.3
)

// Match ties a detected pattern to the bar it occurred on. Most bars match
// nothing, so detection output stays sparse.
type Match struct {
	Date  time.Time `json:"date"`
	Label Label     `json:"label"`
}

// Doji reports whether the bar's body is negligible relative to its range.
// A zero-range bar never qualifies.
func Doji(b model.Bar) bool {
	candleRange := b.High - b.Low
	if candleRange == 0 {
		return false
	}
	body := math.Abs(b.Close - b.Open)
	return body/candleRange*100 < dojiBodyPct
}

// Hammer reports whether the bar has a long lower shadow under a small body.
func Hammer(b model.Bar) bool {
	body := math.Abs(b.Close - b.Open)
	lower := math.Min(b.Open, b.Close) - b.Low
	upper := b.High - math.Max(b.Open, b.Close)
	candleRange := b.High - b.Low
	return lower > shadowRatio*body && upper < body && body < smallBodyFrac*candleRange
}

// ShootingStar reports whether the bar has a long upper shadow over a small
// body.
func ShootingStar(b model.Bar) bool {
	body := math.Abs(b.Close - b.Open)
	lower := math.Min(b.Open, b.Close) - b.Low
	upper := b.High - math.Max(b.Open, b.Close)
	candleRange := b.High - b.Low
	return upper > shadowRatio*body && lower < body && body < smallBodyFrac*candleRange
}

// BullishEngulfing reports whether cur is a rising body that fully contains
// the falling body of prev.
func BullishEngulfing(prev, cur model.Bar) bool {
	return prev.Close < prev.Open &&
		cur.Close > cur.Open &&
		cur.Open < prev.Close &&
		cur.Close > prev.Open
}

// BearishEngulfing reports whether cur is a falling body that fully contains
// the rising body of prev.
func BearishEngulfing(prev, cur model.Bar) bool {
	return prev.Close > prev.Open &&
		cur.Close < cur.Open &&
		cur.Open > prev.Close &&
		cur.Close < prev.Open
}

// Candles walks the series and returns every candlestick pattern match in
// date order.
func Candles(bars []model.Bar) []Match {
	var matches []Match
	for i, b := range bars {
		if Doji(b) {
			matches = append(matches, Match{Date: b.Date, Label: LabelDoji})
		}
		if i > 0 {
			if BullishEngulfing(bars[i-1], b) {
				matches = append(matches, Match{Date: b.Date, Label: LabelBullishEngulfing})
			}
			if BearishEngulfing(bars[i-1], b) {
				matches = append(matches, Match{Date: b.Date, Label: LabelBearishEngulfing})
			}
		}
		if Hammer(b) {
			matches = append(matches, Match{Date: b.Date, Label: LabelHammer})
		}
		if ShootingStar(b) {
			matches = append(matches, Match{Date: b.Date, Label: LabelShootingStar})
		}
	}
	return matches
}
