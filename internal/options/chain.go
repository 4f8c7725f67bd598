package options

import (
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

const (
	// DefaultMoneynessWindow keeps strikes within 10% of spot.
	DefaultMoneynessWindow = 0.10
	// DefaultMinVolume is the liquidity floor on daily contract volume.
	DefaultMinVolume = 100
	// DefaultMinOpenInterest is the liquidity floor on open interest.
	DefaultMinOpenInterest = 500
)

// Spread is a contract's bid-ask spread. Pct is undefined when there is no
// bid to measure against.
type Spread struct {
	Width float64     `json:"spread"`
	Pct   model.Ratio `json:"spread_pct"`
}

// FilterByMoneyness keeps contracts whose strike falls within window of the
// spot price, bounds inclusive.
func FilterByMoneyness(contracts []model.OptionContract, spot, window float64) []model.OptionContract {
	lower := spot * (1 - window)
	upper := spot * (1 + window)
	out := make([]model.OptionContract, 0, len(contracts))
	for _, c := range contracts {
		if c.Strike >= lower && c.Strike <= upper {
			out = append(out, c)
		}
	}
	return out
}

// FilterLiquid keeps contracts trading at or above both liquidity floors.
func FilterLiquid(contracts []model.OptionContract, minVolume, minOpenInterest int64) []model.OptionContract {
	out := make([]model.OptionContract, 0, len(contracts))
	for _, c := range contracts {
		if c.Volume >= minVolume && c.OpenInterest >= minOpenInterest {
			out = append(out, c)
		}
	}
	return out
}

// ContractSpread measures a contract's bid-ask spread in absolute terms and
// as a percentage of the bid.
func ContractSpread(c model.OptionContract) Spread {
	s := Spread{Width: c.Ask - c.Bid}
	if c.Bid != 0 {
		s.Pct = model.DefinedRatio(s.Width / c.Bid * 100)
	}
	return s
}

// Summarize aggregates one expiry's contracts into per-side totals, the
// put/call volume ratio, and the strike carrying the most open interest on
// each side.
func Summarize(expiry time.Time, contracts []model.OptionContract) model.ChainSummary {
	s := model.ChainSummary{Expiry: expiry}

	var maxCallOI, maxPutOI int64 = -1, -1
	for _, c := range contracts {
		switch c.Type {
		case model.Call:
			s.TotalCalls++
			s.CallVolume += c.Volume
			if c.OpenInterest > maxCallOI {
				maxCallOI = c.OpenInterest
				strike := c.Strike
				s.MaxCallOIStrike = &strike
			}
		case model.Put:
			s.TotalPuts++
			s.PutVolume += c.Volume
			if c.OpenInterest > maxPutOI {
				maxPutOI = c.OpenInterest
				strike := c.Strike
				s.MaxPutOIStrike = &strike
			}
		}
	}

	if s.CallVolume > 0 {
		s.PutCallRatio = model.DefinedRatio(float64(s.PutVolume) / float64(s.CallVolume))
	}
	return s
}
