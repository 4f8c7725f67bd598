package indicator

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// RSI computes the Wilder-smoothed relative strength index over the given
// period, aligned to the input. The first period positions are undefined.
// Output is bounded [0,100]; a stretch with no gains and no losses reads 50.
func RSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive", model.ErrInvalidParameter)
	}
	out := undefinedSeries(len(closes))

	var avgGain, avgLoss float64
	changes := 0
	for i := 1; i < len(closes); i++ {
		if math.IsNaN(closes[i]) || math.IsNaN(closes[i-1]) {
			avgGain, avgLoss = 0, 0
			changes = 0
			continue
		}
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if changes < period {
			// Initial averages over the first period changes.
			avgGain += gain
			avgLoss += loss
			changes++
			if changes == period {
				avgGain /= float64(period)
				avgLoss /= float64(period)
				out[i] = rsiValue(avgGain, avgLoss)
			}
			continue
		}

		// Wilder smoothing for the remaining bars.
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return 50.0
	}
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
