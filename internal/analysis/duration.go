package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DurationStats summarizes one hourly load series through its load-duration curve.
// Units: Peak, Mean, P05, P95 in kW; Energy in kWh; FullLoadHours in hours.
type DurationStats struct {
	Count int

	Peak float64
	Mean float64
	P05  float64
	P95  float64

	Energy float64
	// FullLoadHours is Energy / Peak: how many hours at peak power deliver the yearly energy.
	FullLoadHours float64
}

func ComputeDuration(values []float64) DurationStats {
	s := DurationStats{}
	if len(values) == 0 {
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Count = len(sorted)
	s.Peak = floats.Max(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.P05 = percentileSorted(sorted, 0.05)
	s.P95 = percentileSorted(sorted, 0.95)
	s.Energy = floats.Sum(sorted)
	if s.Peak > 0 {
		s.FullLoadHours = s.Energy / s.Peak
	}
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
