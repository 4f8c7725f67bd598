package model

import (
	"fmt"
	"math"
	"time"
)

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is the most recent traded price for a ticker.
type Quote struct {
	Ticker string    `json:"ticker"`
	Price  float64   `json:"price"`
	At     time.Time `json:"at"`
}

// Closes extracts the close column from a bar slice.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// ValidateBars checks the series invariants: dates strictly increasing with
// no duplicates, prices and volume non-negative.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
			return fmt.Errorf("%w: negative price at bar %d", ErrInvalidParameter, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: negative volume at bar %d", ErrInvalidParameter, i)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%w: dates not strictly increasing at bar %d", ErrInvalidParameter, i)
		}
	}
	return nil
}

// Undefined reports whether an aligned-series value is undefined (warm-up
// positions and propagated missing inputs are marked NaN).
func Undefined(v float64) bool {
	return math.IsNaN(v)
}
