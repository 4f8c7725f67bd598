package fundamental

import (
	"errors"
	"math"
	"testing"

	"github.com/Rbh2733/Dashboard/internal/model"
)

func TestComputeRatios(t *testing.T) {
	f := model.Financials{
		Ticker:             "AAPL",
		Price:              180,
		EPS:                6,
		MarketCap:          2.8e12,
		Revenue:            4e11,
		GrossProfit:        1.8e11,
		OperatingIncome:    1.2e11,
		NetIncome:          1e11,
		BookValue:          7e10,
		ShareholderEquity:  6.2e10,
		TotalAssets:        3.5e11,
		TotalDebt:          1.1e11,
		CurrentAssets:      1.4e11,
		CurrentLiabilities: 1.45e11,
		FreeCashFlow:       9e10,
		SharesOutstanding:  1.55e10,
		DividendRate:       0.96,
	}

	rs := ComputeRatios(f)
	cases := []struct {
		name string
		got  model.Ratio
		want float64
	}{
		{"pe", rs.PERatio, 30},
		{"ps", rs.PSRatio, 7},
		{"pb", rs.PBRatio, 40},
		{"roe", rs.ROE, 1e11 / 6.2e10},
		{"roa", rs.ROA, 1e11 / 3.5e11},
		{"gross margin", rs.GrossMargin, 0.45},
		{"operating margin", rs.OperatingMargin, 0.3},
		{"net margin", rs.NetMargin, 0.25},
		{"debt to equity", rs.DebtToEquity, 1.1e11 / 6.2e10},
		{"current ratio", rs.CurrentRatio, 1.4e11 / 1.45e11},
		{"dividend yield", rs.DividendYield, 0.96 / 180},
		{"fcf yield", rs.FCFYield, 9e10 / 2.8e12},
	}
	for _, tc := range cases {
		if !tc.got.Defined {
			t.Errorf("%s: expected a defined ratio", tc.name)
			continue
		}
		if math.Abs(tc.got.Value-tc.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, tc.got.Value)
		}
	}
}

func TestComputeRatios_ZeroDenominators(t *testing.T) {
	rs := ComputeRatios(model.Financials{Ticker: "EMPTY"})
	for _, r := range []struct {
		name string
		got  model.Ratio
	}{
		{"pe", rs.PERatio},
		{"ps", rs.PSRatio},
		{"pb", rs.PBRatio},
		{"roe", rs.ROE},
		{"roa", rs.ROA},
		{"gross margin", rs.GrossMargin},
		{"operating margin", rs.OperatingMargin},
		{"net margin", rs.NetMargin},
		{"debt to equity", rs.DebtToEquity},
		{"current ratio", rs.CurrentRatio},
		{"dividend yield", rs.DividendYield},
		{"fcf yield", rs.FCFYield},
	} {
		if r.got.Defined {
			t.Errorf("%s: a zero denominator must read undefined, got %v", r.name, r.got.Value)
		}
	}
}

func TestValuate(t *testing.T) {
	res, err := Valuate(model.DCFInput{
		FreeCashFlow:       100,
		GrowthRate:         0.10,
		TerminalGrowthRate: 0.03,
		DiscountRate:       0.10,
		Years:              5,
		SharesOutstanding:  100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Growth equals the discount rate, so each projected year discounts
	// back to exactly 100.
	if math.Abs(res.PVOfCashFlows-500) > 1e-6 {
		t.Errorf("expected PV of cash flows 500, got %v", res.PVOfCashFlows)
	}
	if len(res.ProjectedFCF) != 5 || math.Abs(res.ProjectedFCF[4]-161.051) > 1e-6 {
		t.Errorf("unexpected projections: %v", res.ProjectedFCF)
	}
	if math.Abs(res.TerminalValue-2369.7504285714) > 1e-3 {
		t.Errorf("unexpected terminal value: %v", res.TerminalValue)
	}
	if math.Abs(res.PVOfTerminalValue-1471.4285714286) > 1e-6 {
		t.Errorf("unexpected PV of terminal value: %v", res.PVOfTerminalValue)
	}
	if math.Abs(res.EnterpriseValue-1971.4285714286) > 1e-6 {
		t.Errorf("unexpected enterprise value: %v", res.EnterpriseValue)
	}
	if math.Abs(res.IntrinsicPerShare-19.714285714286) > 1e-6 {
		t.Errorf("unexpected per-share value: %v", res.IntrinsicPerShare)
	}
}

func TestValuate_RejectsInvalidInput(t *testing.T) {
	valid := model.DCFInput{
		FreeCashFlow:       100,
		GrowthRate:         0.10,
		TerminalGrowthRate: 0.03,
		DiscountRate:       0.08,
		Years:              5,
		SharesOutstanding:  100,
	}
	cases := []struct {
		name   string
		mutate func(*model.DCFInput)
	}{
		{"zero fcf", func(in *model.DCFInput) { in.FreeCashFlow = 0 }},
		{"negative fcf", func(in *model.DCFInput) { in.FreeCashFlow = -50 }},
		{"zero years", func(in *model.DCFInput) { in.Years = 0 }},
		{"discount equals terminal growth", func(in *model.DCFInput) { in.TerminalGrowthRate = 0.08 }},
		{"discount below terminal growth", func(in *model.DCFInput) { in.TerminalGrowthRate = 0.12 }},
		{"zero shares", func(in *model.DCFInput) { in.SharesOutstanding = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := Valuate(in); !errors.Is(err, model.ErrInvalidParameter) {
				t.Errorf("expected invalid-parameter error, got %v", err)
			}
		})
	}
}
