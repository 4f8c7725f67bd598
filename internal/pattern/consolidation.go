package pattern

import "github.com/Rbh2733/Dashboard/internal/model"

const (
	// DefaultConsolidationWindow is the rolling lookback for range
	// tightness checks.
	DefaultConsolidationWindow = 20
	// DefaultMaxRangePct is the widest high-to-low spread, as a percentage
	// of the window's midpoint price, that still counts as consolidation.
	DefaultMaxRangePct = 5.0

	// breakoutLookback is how many recent bars are checked for a prior
	// consolidation when judging a breakout.
	breakoutLookback = 10
	// breakoutMinRisePct is the minimum close-over-close rise, measured
	// four bars back, required to confirm a breakout.
	breakoutMinRisePct = 2.0
)

// BreakoutStatus reports where a series sits relative to a consolidation
// range.
type BreakoutStatus struct {
	InConsolidation bool `json:"in_consolidation"`
	BreakingOut     bool `json:"breaking_out"`
}

// Consolidations flags, per bar, whether the trailing window's high-to-low
// spread stays inside maxRangePct of the window midpoint. Positions before
// the first full window read false.
func Consolidations(bars []model.Bar, window int, maxRangePct float64) []bool {
	out := make([]bool, len(bars))
	if window <= 0 || len(bars) < window {
		return out
	}
	for i := window - 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low
		for j := i - window + 1; j < i; j++ {
			if bars[j].High > high {
				high = bars[j].High
			}
			if bars[j].Low < low {
				low = bars[j].Low
			}
		}
		mid := (high + low) / 2
		if mid <= 0 {
			continue
		}
		out[i] = (high-low)/mid*100 < maxRangePct
	}
	return out
}

// Consolidating reports whether the latest bar closes a consolidation
// window under the default parameters.
func Consolidating(bars []model.Bar) bool {
	flags := Consolidations(bars, DefaultConsolidationWindow, DefaultMaxRangePct)
	if len(flags) == 0 {
		return false
	}
	return flags[len(flags)-1]
}

// CheckBreakout classifies the latest bar: still consolidating, or exiting
// a recent consolidation with enough upward momentum to call it a breakout.
func CheckBreakout(bars []model.Bar) BreakoutStatus {
	flags := Consolidations(bars, DefaultConsolidationWindow, DefaultMaxRangePct)
	if len(flags) < 2 {
		return BreakoutStatus{}
	}

	n := len(flags)
	current := flags[n-1]
	was := false
	if n > breakoutLookback {
		for _, f := range flags[n-breakoutLookback : n-1] {
			if f {
				was = true
				break
			}
		}
	}

	breaking := was && !current
	if breaking && len(bars) > 5 {
		ref := bars[len(bars)-5].Close
		if ref != 0 {
			change := (bars[len(bars)-1].Close - ref) / ref * 100
			breaking = change > breakoutMinRisePct
		}
	}
	return BreakoutStatus{InConsolidation: current, BreakingOut: breaking}
}
