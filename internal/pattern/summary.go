package pattern

import "github.com/Rbh2733/Dashboard/internal/model"

// recentWindow is how many trailing bars the summary inspects.
const recentWindow = 30

// Summary aggregates recent pattern activity for one ticker.
type Summary struct {
	Matches           []Match       `json:"matches"`
	Counts            map[Label]int `json:"counts"`
	InConsolidation   bool          `json:"in_consolidation"`
	ConsolidationDays int           `json:"consolidation_days"`
	BreakingOut       bool          `json:"breaking_out"`
	Support           []float64     `json:"support_levels"`
	Resistance        []float64     `json:"resistance_levels"`
}

// Summarize reports candlestick matches and consolidation activity over the
// last thirty bars, plus support and resistance levels drawn from the whole
// series.
func Summarize(bars []model.Bar) Summary {
	s := Summary{Counts: make(map[Label]int)}
	if len(bars) == 0 {
		return s
	}

	start := len(bars) - recentWindow
	if start < 0 {
		start = 0
	}
	cutoff := bars[start].Date

	for _, m := range Candles(bars) {
		if m.Date.Before(cutoff) {
			continue
		}
		s.Matches = append(s.Matches, m)
		s.Counts[m.Label]++
	}

	flags := Consolidations(bars, DefaultConsolidationWindow, DefaultMaxRangePct)
	for _, f := range flags[start:] {
		if f {
			s.ConsolidationDays++
		}
	}
	status := CheckBreakout(bars)
	s.InConsolidation = status.InConsolidation
	s.BreakingOut = status.BreakingOut

	s.Support, s.Resistance = SupportResistance(bars, DefaultLevelCount)
	return s
}
