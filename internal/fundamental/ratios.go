package fundamental

import "github.com/Rbh2733/Dashboard/internal/model"

// ComputeRatios derives the standard valuation, profitability, health and
// dividend ratios from raw statement line items. Every ratio with a zero
// denominator comes back undefined instead of Inf.
func ComputeRatios(f model.Financials) model.RatioSet {
	return model.RatioSet{
		PERatio:         ratio(f.Price, f.EPS),
		PSRatio:         ratio(f.MarketCap, f.Revenue),
		PBRatio:         ratio(f.MarketCap, f.BookValue),
		ROE:             ratio(f.NetIncome, f.ShareholderEquity),
		ROA:             ratio(f.NetIncome, f.TotalAssets),
		GrossMargin:     ratio(f.GrossProfit, f.Revenue),
		OperatingMargin: ratio(f.OperatingIncome, f.Revenue),
		NetMargin:       ratio(f.NetIncome, f.Revenue),
		DebtToEquity:    ratio(f.TotalDebt, f.ShareholderEquity),
		CurrentRatio:    ratio(f.CurrentAssets, f.CurrentLiabilities),
		DividendYield:   ratio(f.DividendRate, f.Price),
		FCFYield:        ratio(f.FreeCashFlow, f.MarketCap),
	}
}

func ratio(num, denom float64) model.Ratio {
	if denom == 0 {
		return model.UndefinedRatio()
	}
	return model.DefinedRatio(num / denom)
}
