package load

import (
	"encoding/json"
	"fmt"
	"math"

	"geothermal-load/internal/calendar"
)

// ToSeries converts candidate into a fresh []float64 of the given length.
// Accepted shapes are []float64, [8760]float64, []int and []any of numbers (as produced by
// encoding/json). Anything else, a wrong length, or a negative or non-finite value yields
// an error wrapping ErrInvalidLoadInput.
func ToSeries(candidate any, length int) ([]float64, error) {
	var out []float64
	switch v := candidate.(type) {
	case []float64:
		out = append(make([]float64, 0, len(v)), v...)
	case [calendar.HoursPerYear]float64:
		out = append(make([]float64, 0, len(v)), v[:]...)
	case []int:
		out = make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
	case []any:
		out = make([]float64, len(v))
		for i, x := range v {
			f, ok := number(x)
			if !ok {
				return nil, fmt.Errorf("%w: value %d is %T, not a number", ErrInvalidLoadInput, i, x)
			}
			out[i] = f
		}
	default:
		return nil, fmt.Errorf("%w: the load should be a sequence of numbers, got %T", ErrInvalidLoadInput, candidate)
	}

	if len(out) != length {
		return nil, fmt.Errorf("%w: the length of the load should be %d, got %d", ErrInvalidLoadInput, length, len(out))
	}
	for i, x := range out {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: value %d is not finite", ErrInvalidLoadInput, i)
		}
		if x < 0 {
			return nil, fmt.Errorf("%w: no value in the load can be smaller than zero (index %d is %g)", ErrInvalidLoadInput, i, x)
		}
	}
	return out, nil
}

func number(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
