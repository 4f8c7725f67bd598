package model

import "errors"

// Sentinel errors shared across the analytics packages. Callers match them
// with errors.Is; the detail is carried by the wrapping message.
var (
	// ErrInsufficientData means the available history is shorter than the
	// window a computation requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter means a caller-supplied parameter is outside the
	// domain of the formula (never silently clamped).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrFetchFailed means an upstream market data source could not serve
	// the request.
	ErrFetchFailed = errors.New("market data fetch failed")
)
