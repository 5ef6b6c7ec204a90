package models

import (
	"geothermal-load/internal/analysis"
	"geothermal-load/internal/report"
)

// FromSummary converts a report summary into its wire form.
func FromSummary(s report.Summary) LoadSummary {
	out := LoadSummary{
		HourlyResolution: s.HourlyResolution,
		SimulationPeriod: s.SimulationPeriod,
		StartMonth:       s.StartMonth,
		Months:           make([]MonthSummary, 0, len(s.Months)),
		HeatingEnergyKWh: s.HeatingEnergyKWh,
		CoolingEnergyKWh: s.CoolingEnergyKWh,
		ImbalanceKWh:     s.ImbalanceKWh,
		HeatingDuration:  fromDuration(s.HeatingDuration),
		CoolingDuration:  fromDuration(s.CoolingDuration),
	}
	for _, m := range s.Months {
		out.Months = append(out.Months, MonthSummary{
			Index:              m.Index,
			Month:              m.Month,
			PeakHeatingKW:      m.PeakHeatingKW,
			PeakCoolingKW:      m.PeakCoolingKW,
			BaseloadHeatingKWh: m.BaseloadHeatingKWh,
			BaseloadCoolingKWh: m.BaseloadCoolingKWh,
		})
	}
	return out
}

func fromDuration(d *analysis.DurationStats) *DurationInfo {
	if d == nil {
		return nil
	}
	return &DurationInfo{
		PeakKW:        d.Peak,
		MeanKW:        d.Mean,
		P05KW:         d.P05,
		P95KW:         d.P95,
		EnergyKWh:     d.Energy,
		FullLoadHours: d.FullLoadHours,
	}
}

// FromRanking numbers the ranked profiles from 1.
func FromRanking(ranked []analysis.RankedProfile) []RankedProfile {
	out := make([]RankedProfile, 0, len(ranked))
	for i, r := range ranked {
		out = append(out, RankedProfile{
			Rank:             i + 1,
			Name:             r.Name,
			ImbalanceKWh:     r.Imbalance,
			HeatingEnergyKWh: r.HeatingEnergy,
			CoolingEnergyKWh: r.CoolingEnergy,
		})
	}
	return out
}
