package indicator

import "math"

// Crossover marks where the fast series crosses the slow one: +1 where it
// crosses above, -1 where it crosses below, 0 otherwise. Bars where either
// side is undefined never register a cross.
func Crossover(fast, slow []float64) []int {
	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}
	out := make([]int, n)
	for i := 1; i < n; i++ {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) ||
			math.IsNaN(fast[i-1]) || math.IsNaN(slow[i-1]) {
			continue
		}
		switch {
		case fast[i] > slow[i] && fast[i-1] <= slow[i-1]:
			out[i] = 1
		case fast[i] < slow[i] && fast[i-1] >= slow[i-1]:
			out[i] = -1
		}
	}
	return out
}

// GoldenDeathCross computes the crossover series of the 50-day SMA against
// the 200-day SMA: +1 on a golden cross, -1 on a death cross.
func GoldenDeathCross(closes []float64) []int {
	sma50, _ := SMA(closes, 50)
	sma200, _ := SMA(closes, 200)
	return Crossover(sma50, sma200)
}
