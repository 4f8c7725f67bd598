package model

import "time"

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// OptionQuote is the input to the Greeks calculator. Rate and Volatility are
// annualized decimals, TimeToExpiry is in years.
type OptionQuote struct {
	Spot         float64    `json:"spot"`
	Strike       float64    `json:"strike"`
	Rate         float64    `json:"rate"`
	Volatility   float64    `json:"volatility"`
	TimeToExpiry float64    `json:"time_to_expiry"`
	Type         OptionType `json:"type"`
}

// Greeks holds the Black-Scholes theoretical price and sensitivities. Theta
// is per calendar day; Vega and Rho are per one percentage point.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// OptionContract is one row of an options chain.
type OptionContract struct {
	ContractSymbol    string     `json:"contract_symbol"`
	Type              OptionType `json:"type"`
	Strike            float64    `json:"strike"`
	Expiry            time.Time  `json:"expiry"`
	LastPrice         float64    `json:"last_price"`
	Bid               float64    `json:"bid"`
	Ask               float64    `json:"ask"`
	Volume            int64      `json:"volume"`
	OpenInterest      int64      `json:"open_interest"`
	ImpliedVolatility float64    `json:"implied_volatility"`
	InTheMoney        bool       `json:"in_the_money"`
}

// ChainSummary aggregates one expiry's chain. PutCallRatio is undefined when
// no call volume traded; the max open-interest strikes are nil for an empty
// side.
type ChainSummary struct {
	Expiry          time.Time `json:"expiry"`
	TotalCalls      int       `json:"total_calls"`
	TotalPuts       int       `json:"total_puts"`
	CallVolume      int64     `json:"call_volume"`
	PutVolume       int64     `json:"put_volume"`
	PutCallRatio    Ratio     `json:"put_call_ratio"`
	MaxCallOIStrike *float64  `json:"max_call_oi_strike,omitempty"`
	MaxPutOIStrike  *float64  `json:"max_put_oi_strike,omitempty"`
}
