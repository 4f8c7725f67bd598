package model

import (
	"encoding/json"
	"math"
)

// Ratio is a numeric result that may be undefined (zero or missing
// denominator). Undefined ratios marshal to JSON null so the UI can render a
// placeholder instead of Inf or a bogus zero.
type Ratio struct {
	Value   float64
	Defined bool
}

// DefinedRatio wraps a computed value.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// UndefinedRatio marks a value that could not be computed.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// RatioFromFloat bridges NaN-based series math into a Ratio: NaN maps to
// undefined.
func RatioFromFloat(v float64) Ratio {
	if math.IsNaN(v) {
		return Ratio{}
	}
	return Ratio{Value: v, Defined: true}
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Defined: true}
	return nil
}
