package load

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Series is one named line of a chart.
type Series struct {
	Label  string
	Values []float64
}

// Plotter renders step charts.
type Plotter interface {
	Step(series []Series, baseline float64, legend bool) error
}

// LoadDuration returns the heating load sorted in descending order and the cooling load
// sorted in descending order and negated, so both curves share a zero baseline.
func (h *Hourly) LoadDuration() (heating, cooling []float64) {
	heating = h.HeatingLoad()
	sort.Sort(sort.Reverse(sort.Float64Slice(heating)))

	cooling = h.CoolingLoad()
	sort.Sort(sort.Reverse(sort.Float64Slice(cooling)))
	floats.Scale(-1, cooling)
	return heating, cooling
}

// PlotLoadDuration hands the load-duration curve to p.
func (h *Hourly) PlotLoadDuration(p Plotter, legend bool) error {
	heating, cooling := h.LoadDuration()
	return p.Step([]Series{
		{Label: "Heating", Values: heating},
		{Label: "Cooling", Values: cooling},
	}, 0, legend)
}
