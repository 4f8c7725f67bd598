package model

// Financials holds raw financial-statement line items for one ticker. Zero
// means the field is missing; ratios over missing denominators come back
// undefined.
type Financials struct {
	Ticker             string  `json:"ticker"`
	Price              float64 `json:"price"`
	EPS                float64 `json:"eps"`
	MarketCap          float64 `json:"market_cap"`
	Revenue            float64 `json:"revenue"`
	GrossProfit        float64 `json:"gross_profit"`
	OperatingIncome    float64 `json:"operating_income"`
	NetIncome          float64 `json:"net_income"`
	BookValue          float64 `json:"book_value"`
	ShareholderEquity  float64 `json:"shareholder_equity"`
	TotalAssets        float64 `json:"total_assets"`
	TotalDebt          float64 `json:"total_debt"`
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	FreeCashFlow       float64 `json:"free_cash_flow"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
	DividendRate       float64 `json:"dividend_rate"`
}

// RatioSet is the derived valuation, profitability, health and dividend
// ratios for one ticker.
type RatioSet struct {
	PERatio         Ratio `json:"pe_ratio"`
	PSRatio         Ratio `json:"ps_ratio"`
	PBRatio         Ratio `json:"pb_ratio"`
	ROE             Ratio `json:"roe"`
	ROA             Ratio `json:"roa"`
	GrossMargin     Ratio `json:"gross_margin"`
	OperatingMargin Ratio `json:"operating_margin"`
	NetMargin       Ratio `json:"net_margin"`
	DebtToEquity    Ratio `json:"debt_to_equity"`
	CurrentRatio    Ratio `json:"current_ratio"`
	DividendYield   Ratio `json:"dividend_yield"`
	FCFYield        Ratio `json:"fcf_yield"`
}

// DCFInput parameterizes a simple discounted-cash-flow valuation.
type DCFInput struct {
	FreeCashFlow       float64 `json:"free_cash_flow"`
	GrowthRate         float64 `json:"growth_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
	DiscountRate       float64 `json:"discount_rate"`
	Years              int     `json:"years"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
}

// DCFResult is the present-value estimate produced by the DCF model.
type DCFResult struct {
	EnterpriseValue   float64   `json:"enterprise_value"`
	PVOfCashFlows     float64   `json:"pv_of_cash_flows"`
	TerminalValue     float64   `json:"terminal_value"`
	PVOfTerminalValue float64   `json:"pv_of_terminal_value"`
	IntrinsicPerShare float64   `json:"intrinsic_value_per_share"`
	ProjectedFCF      []float64 `json:"projected_fcf"`
	Input             DCFInput  `json:"assumptions"`
}
