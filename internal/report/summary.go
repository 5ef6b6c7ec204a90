package report

import (
	"geothermal-load/internal/analysis"
	"geothermal-load/internal/calendar"
	"geothermal-load/internal/load"

	"gonum.org/v1/gonum/floats"
)

// MonthRow is one month of a load summary, in simulation order.
type MonthRow struct {
	Index int
	// Month is the calendar month (1-12) of this row.
	Month int

	PeakHeatingKW      float64
	PeakCoolingKW      float64
	BaseloadHeatingKWh float64
	BaseloadCoolingKWh float64
}

// Summary is the primary artifact for "what does this load look like".
type Summary struct {
	HourlyResolution bool
	SimulationPeriod int
	StartMonth       int

	Months []MonthRow

	HeatingEnergyKWh float64
	CoolingEnergyKWh float64
	ImbalanceKWh     float64

	// Duration statistics exist for hourly loads only.
	HeatingDuration *analysis.DurationStats
	CoolingDuration *analysis.DurationStats
}

func BuildSummary(l load.LoadData) Summary {
	ph, pc := l.PeakHeating(), l.PeakCooling()
	bh, bc := l.BaseloadHeating(), l.BaseloadCooling()

	s := Summary{
		HourlyResolution: l.HourlyResolution(),
		SimulationPeriod: l.SimulationPeriod(),
		StartMonth:       l.StartMonth(),
		Months:           make([]MonthRow, 0, calendar.MonthsPerYear),
		HeatingEnergyKWh: floats.Sum(bh),
		CoolingEnergyKWh: floats.Sum(bc),
		ImbalanceKWh:     l.Imbalance(),
	}
	for i := 0; i < calendar.MonthsPerYear; i++ {
		s.Months = append(s.Months, MonthRow{
			Index:              i,
			Month:              (l.StartMonth()-1+i)%calendar.MonthsPerYear + 1,
			PeakHeatingKW:      ph[i],
			PeakCoolingKW:      pc[i],
			BaseloadHeatingKWh: bh[i],
			BaseloadCoolingKWh: bc[i],
		})
	}

	if h, ok := l.(*load.Hourly); ok {
		heating := analysis.ComputeDuration(h.HeatingLoad())
		cooling := analysis.ComputeDuration(h.CoolingLoad())
		s.HeatingDuration = &heating
		s.CoolingDuration = &cooling
	}
	return s
}
