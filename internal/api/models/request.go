package models

// LoadRequest describes one hourly load. Heating and cooling are decoded loosely so a
// scalar or a malformed array can be reported as invalid load input rather than as a
// binding error. Omitted arrays are all zero.
type LoadRequest struct {
	Name             string  `json:"name,omitempty"`
	Heating          any     `json:"heating,omitempty"`
	Cooling          any     `json:"cooling,omitempty"`
	SimulationPeriod int     `json:"simulation_period,omitempty"` // years, default: 20
	DHW              float64 `json:"dhw,omitempty"`               // kWh/year
	StartMonth       int     `json:"start_month,omitempty"`       // 1-12, default: 1
	AllMonthsEqual   bool    `json:"all_months_equal,omitempty"`
}

// CombineRequest is a list of loads to be added together.
type CombineRequest struct {
	Loads []LoadRequest `json:"loads" binding:"required,min=1"`
}

// ImportQuery describes the layout of an uploaded tabular profile.
type ImportQuery struct {
	Header           *bool   `form:"header"`
	Separator        string  `form:"separator"`
	DecimalSeparator string  `form:"decimal"`
	HeatingColumn    int     `form:"heating_col"`
	CoolingColumn    *int    `form:"cooling_col"` // default: 1
	SimulationPeriod int     `form:"simulation_period"`
	DHW              float64 `form:"dhw"`
	StartMonth       int     `form:"start_month"`
	AllMonthsEqual   bool    `form:"all_months_equal"`
}
