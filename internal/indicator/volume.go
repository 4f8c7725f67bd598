package indicator

import (
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// VWAP computes the volume-weighted average price using the typical price
// (high+low+close)/3, cumulative over the whole series. Daily bars carry no
// session boundaries, so the accumulation never resets.
func VWAP(bars []model.Bar) []float64 {
	out := undefinedSeries(len(bars))
	var cumPV, cumVol float64
	for i, b := range bars {
		if math.IsNaN(b.High) || math.IsNaN(b.Low) || math.IsNaN(b.Close) || math.IsNaN(b.Volume) {
			continue
		}
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * b.Volume
		cumVol += b.Volume
		if cumVol > 0 {
			out[i] = cumPV / cumVol
		}
	}
	return out
}

// OBV computes the on-balance volume: starts at zero, adds the bar's volume
// when the close rises, subtracts it when the close falls, holds on a tie.
func OBV(bars []model.Bar) []float64 {
	out := undefinedSeries(len(bars))
	obv := 0.0
	prev := math.NaN()
	for i, b := range bars {
		if math.IsNaN(b.Close) || math.IsNaN(b.Volume) {
			continue
		}
		if !math.IsNaN(prev) {
			switch {
			case b.Close > prev:
				obv += b.Volume
			case b.Close < prev:
				obv -= b.Volume
			}
		}
		out[i] = obv
		prev = b.Close
	}
	return out
}
