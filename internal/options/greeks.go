package options

import (
	"fmt"
	"math"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// minYears floors the time-to-expiry conversion so same-day expiries stay
// priceable.
const minYears = 0.001

// YearsUntil converts an expiry date to a year fraction relative to now.
func YearsUntil(expiry, now time.Time) float64 {
	years := expiry.Sub(now).Hours() / 24 / 365
	if years < minYears {
		return minYears
	}
	return years
}

// CalculateGreeks prices an option under the Black-Scholes model and returns
// its sensitivities. Theta is per calendar day; Vega and Rho are per one
// percentage point of volatility and rate. Expired options, non-positive
// volatility, and non-positive prices are rejected: the model's formulas are
// not defined there.
func CalculateGreeks(q model.OptionQuote) (*model.Greeks, error) {
	if q.TimeToExpiry <= 0 {
		return nil, fmt.Errorf("%w: time to expiry must be positive, got %v", model.ErrInvalidParameter, q.TimeToExpiry)
	}
	if q.Volatility <= 0 {
		return nil, fmt.Errorf("%w: volatility must be positive, got %v", model.ErrInvalidParameter, q.Volatility)
	}
	if q.Spot <= 0 {
		return nil, fmt.Errorf("%w: spot must be positive, got %v", model.ErrInvalidParameter, q.Spot)
	}
	if q.Strike <= 0 {
		return nil, fmt.Errorf("%w: strike must be positive, got %v", model.ErrInvalidParameter, q.Strike)
	}
	if q.Type != model.Call && q.Type != model.Put {
		return nil, fmt.Errorf("%w: unknown option type %q", model.ErrInvalidParameter, q.Type)
	}

	sqrtT := math.Sqrt(q.TimeToExpiry)
	d1 := (math.Log(q.Spot/q.Strike) + (q.Rate+0.5*q.Volatility*q.Volatility)*q.TimeToExpiry) / (q.Volatility * sqrtT)
	d2 := d1 - q.Volatility*sqrtT
	discount := math.Exp(-q.Rate * q.TimeToExpiry)

	g := &model.Greeks{
		Gamma: normPDF(d1) / (q.Spot * q.Volatility * sqrtT),
		Vega:  q.Spot * normPDF(d1) * sqrtT / 100,
	}

	decay := -q.Spot * normPDF(d1) * q.Volatility / (2 * sqrtT)
	switch q.Type {
	case model.Call:
		g.Price = q.Spot*normCDF(d1) - q.Strike*discount*normCDF(d2)
		g.Delta = normCDF(d1)
		g.Theta = (decay - q.Rate*q.Strike*discount*normCDF(d2)) / 365
		g.Rho = q.Strike * q.TimeToExpiry * discount * normCDF(d2) / 100
	case model.Put:
		g.Price = q.Strike*discount*normCDF(-d2) - q.Spot*normCDF(-d1)
		g.Delta = normCDF(d1) - 1
		g.Theta = (decay + q.Rate*q.Strike*discount*normCDF(-d2)) / 365
		g.Rho = -q.Strike * q.TimeToExpiry * discount * normCDF(-d2) / 100
	}
	return g, nil
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
