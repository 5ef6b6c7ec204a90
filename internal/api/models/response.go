package models

// SummaryResponse is returned by every endpoint that evaluates a load.
type SummaryResponse struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Summary  LoadSummary     `json:"summary"`
	Warnings []string        `json:"warnings,omitempty"`
	Ranking  []RankedProfile `json:"ranking,omitempty"`
	Cached   bool            `json:"cached,omitempty"`
}

// LoadSummary contains the monthly view and yearly totals of a load.
type LoadSummary struct {
	HourlyResolution bool           `json:"hourly_resolution"`
	SimulationPeriod int            `json:"simulation_period"`
	StartMonth       int            `json:"start_month"`
	Months           []MonthSummary `json:"months"`
	HeatingEnergyKWh float64        `json:"heating_energy_kwh"`
	CoolingEnergyKWh float64        `json:"cooling_energy_kwh"`
	ImbalanceKWh     float64        `json:"imbalance_kwh"` // positive = injection dominated
	HeatingDuration  *DurationInfo  `json:"heating_duration,omitempty"`
	CoolingDuration  *DurationInfo  `json:"cooling_duration,omitempty"`
}

// MonthSummary is one month in simulation order.
type MonthSummary struct {
	Index              int     `json:"index"`
	Month              int     `json:"month"`
	PeakHeatingKW      float64 `json:"peak_heating_kw"`
	PeakCoolingKW      float64 `json:"peak_cooling_kw"`
	BaseloadHeatingKWh float64 `json:"baseload_heating_kwh"`
	BaseloadCoolingKWh float64 `json:"baseload_cooling_kwh"`
}

// DurationInfo summarizes a load-duration curve.
type DurationInfo struct {
	PeakKW        float64 `json:"peak_kw"`
	MeanKW        float64 `json:"mean_kw"`
	P05KW         float64 `json:"p05_kw"`
	P95KW         float64 `json:"p95_kw"`
	EnergyKWh     float64 `json:"energy_kwh"`
	FullLoadHours float64 `json:"full_load_hours"`
}

// RankedProfile is one profile of a load case ordered by imbalance.
type RankedProfile struct {
	Rank             int     `json:"rank"`
	Name             string  `json:"name"`
	ImbalanceKWh     float64 `json:"imbalance_kwh"`
	HeatingEnergyKWh float64 `json:"heating_energy_kwh"`
	CoolingEnergyKWh float64 `json:"cooling_energy_kwh"`
}

// CaseInfo represents a load case file in the case directory
type CaseInfo struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	File             string   `json:"file"`
	SimulationPeriod int      `json:"simulation_period"`
	StartMonth       int      `json:"start_month"`
	Profiles         []string `json:"profiles"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
