package indicator

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// undefinedSeries returns a series of length n with every position undefined.
func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA computes the simple moving average of closes over the given period,
// aligned to the input. The first period-1 positions are undefined; a series
// shorter than the period comes back all-undefined, not as an error.
func SMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive", model.ErrInvalidParameter)
	}
	out := undefinedSeries(len(closes))
	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		defined := true
		for _, c := range closes[i+1-period : i+1] {
			if math.IsNaN(c) {
				defined = false
				break
			}
			sum += c
		}
		if defined {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average with smoothing factor
// 2/(period+1), seeded with the SMA of the first period values. A missing
// input drops the seed and restarts the warm-up.
func EMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive", model.ErrInvalidParameter)
	}
	out := undefinedSeries(len(closes))
	k := 2.0 / float64(period+1)

	var ema, sum float64
	count := 0
	seeded := false
	for i, c := range closes {
		if math.IsNaN(c) {
			seeded = false
			sum, count = 0, 0
			continue
		}
		if !seeded {
			sum += c
			count++
			if count == period {
				ema = sum / float64(period)
				out[i] = ema
				seeded = true
			}
			continue
		}
		ema += k * (c - ema)
		out[i] = ema
	}
	return out, nil
}
