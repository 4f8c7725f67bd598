package pattern

import (
	"sort"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// DefaultLevelCount is how many support and resistance levels to report.
const DefaultLevelCount = 3

// SupportResistance finds up to count support and resistance prices from
// strict local extrema. Support levels come from the lowest candidates among
// the strongest local lows and are returned ascending; resistance levels
// come from the highest candidates among the weakest local highs and are
// returned descending.
func SupportResistance(bars []model.Bar, count int) (support, resistance []float64) {
	if count <= 0 {
		count = DefaultLevelCount
	}

	var lows, highs []float64
	for i := 1; i < len(bars)-1; i++ {
		if bars[i-1].Low > bars[i].Low && bars[i+1].Low > bars[i].Low {
			lows = append(lows, bars[i].Low)
		}
		if bars[i-1].High < bars[i].High && bars[i+1].High < bars[i].High {
			highs = append(highs, bars[i].High)
		}
	}

	// Pool twice the requested count from each side before deduplicating,
	// so clustered extrema collapse instead of crowding out other levels.
	sort.Sort(sort.Reverse(sort.Float64Slice(lows)))
	support = dedupe(firstN(lows, count*2))
	sort.Float64s(support)
	if len(support) > count {
		support = support[:count]
	}

	sort.Float64s(highs)
	resistance = dedupe(firstN(highs, count*2))
	sort.Sort(sort.Reverse(sort.Float64Slice(resistance)))
	if len(resistance) > count {
		resistance = resistance[:count]
	}
	return support, resistance
}

func firstN(vals []float64, n int) []float64 {
	if len(vals) > n {
		return vals[:n]
	}
	return vals
}

func dedupe(vals []float64) []float64 {
	seen := make(map[float64]bool, len(vals))
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
