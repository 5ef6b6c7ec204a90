package analysis

import (
	"math"
	"sort"

	"geothermal-load/internal/load"

	"gonum.org/v1/gonum/floats"
)

// Profile is a named load.
type Profile struct {
	Name string
	Load load.LoadData
}

type RankedProfile struct {
	Name          string
	Imbalance     float64 // kWh/year, positive = injection dominated
	HeatingEnergy float64 // kWh/year
	CoolingEnergy float64 // kWh/year
}

// RankByImbalance sorts profiles by the size of their ground imbalance, largest first,
// so the profiles driving the field out of balance come on top.
func RankByImbalance(profiles []Profile) []RankedProfile {
	out := make([]RankedProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, RankedProfile{
			Name:          p.Name,
			Imbalance:     p.Load.Imbalance(),
			HeatingEnergy: floats.Sum(p.Load.BaseloadHeating()),
			CoolingEnergy: floats.Sum(p.Load.BaseloadCooling()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Imbalance) > math.Abs(out[j].Imbalance)
	})
	return out
}
