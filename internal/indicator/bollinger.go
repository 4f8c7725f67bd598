package indicator

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// Bollinger computes the Bollinger Bands: the middle band is the SMA over
// the period, the upper and lower bands sit width sample standard deviations
// above and below it.
func Bollinger(closes []float64, period int, width float64) (upper, middle, lower []float64, err error) {
	if period < 2 {
		return nil, nil, nil, fmt.Errorf("%w: period must be at least 2", model.ErrInvalidParameter)
	}
	if width <= 0 {
		return nil, nil, nil, fmt.Errorf("%w: band width must be positive", model.ErrInvalidParameter)
	}

	middle, err = SMA(closes, period)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = undefinedSeries(len(closes))
	lower = undefinedSeries(len(closes))
	for i := period - 1; i < len(closes); i++ {
		if math.IsNaN(middle[i]) {
			continue
		}
		variance := 0.0
		for _, c := range closes[i+1-period : i+1] {
			d := c - middle[i]
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period-1))
		upper[i] = middle[i] + width*std
		lower[i] = middle[i] - width*std
	}
	return upper, middle, lower, nil
}
