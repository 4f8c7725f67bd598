package fundamental

import (
	"fmt"
	"math"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// DefaultDCFYears is the standard projection horizon.
const DefaultDCFYears = 5

// Valuate runs a simple discounted-cash-flow model: project free cash flow
// forward at the growth rate, cap the horizon with a Gordon terminal value,
// and discount everything back at the discount rate.
func Valuate(in model.DCFInput) (*model.DCFResult, error) {
	if in.FreeCashFlow <= 0 {
		return nil, fmt.Errorf("%w: free cash flow must be positive, got %v", model.ErrInvalidParameter, in.FreeCashFlow)
	}
	if in.Years < 1 {
		return nil, fmt.Errorf("%w: projection years must be at least 1, got %d", model.ErrInvalidParameter, in.Years)
	}
	if in.DiscountRate <= in.TerminalGrowthRate {
		return nil, fmt.Errorf("%w: discount rate %v must exceed terminal growth rate %v",
			model.ErrInvalidParameter, in.DiscountRate, in.TerminalGrowthRate)
	}
	if in.SharesOutstanding <= 0 {
		return nil, fmt.Errorf("%w: shares outstanding must be positive, got %v", model.ErrInvalidParameter, in.SharesOutstanding)
	}

	res := &model.DCFResult{
		ProjectedFCF: make([]float64, 0, in.Years),
		Input:        in,
	}
	for year := 1; year <= in.Years; year++ {
		fcf := in.FreeCashFlow * math.Pow(1+in.GrowthRate, float64(year))
		res.ProjectedFCF = append(res.ProjectedFCF, fcf)
		res.PVOfCashFlows += fcf / math.Pow(1+in.DiscountRate, float64(year))
	}

	terminalFCF := res.ProjectedFCF[in.Years-1] * (1 + in.TerminalGrowthRate)
	res.TerminalValue = terminalFCF / (in.DiscountRate - in.TerminalGrowthRate)
	res.PVOfTerminalValue = res.TerminalValue / math.Pow(1+in.DiscountRate, float64(in.Years))

	res.EnterpriseValue = res.PVOfCashFlows + res.PVOfTerminalValue
	res.IntrinsicPerShare = res.EnterpriseValue / in.SharesOutstanding
	return res, nil
}
