package calendar

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	// HoursPerYear is the length of every hourly load series (non-leap year).
	HoursPerYear = 8760
	// MonthsPerYear is the length of every monthly load series.
	MonthsPerYear = 12
)

// DefaultHoursPerMonth holds the hour counts of a non-leap year, January first.
var DefaultHoursPerMonth = [MonthsPerYear]int{744, 672, 744, 720, 744, 720, 744, 744, 720, 744, 720, 744}

// Calendar decides how a year is split into months.
// When AllMonthsEqual is set, HoursPerMonth is ignored and every month lasts 730 hours.
type Calendar struct {
	HoursPerMonth  [MonthsPerYear]int `yaml:"hours_per_month" json:"hours_per_month"`
	AllMonthsEqual bool               `yaml:"all_months_equal" json:"all_months_equal"`
}

// Default returns the non-leap-year calendar.
func Default() Calendar {
	return Calendar{HoursPerMonth: DefaultHoursPerMonth}
}

// Equal returns the calendar where every month lasts HoursPerYear/12 hours.
func Equal() Calendar {
	return Calendar{HoursPerMonth: DefaultHoursPerMonth, AllMonthsEqual: true}
}

// Hours returns the effective hour count per month.
func (c Calendar) Hours() [MonthsPerYear]int {
	if c.AllMonthsEqual {
		var out [MonthsPerYear]int
		for i := range out {
			out[i] = HoursPerYear / MonthsPerYear
		}
		return out
	}
	return c.HoursPerMonth
}

func (c Calendar) Validate() error {
	if c.AllMonthsEqual {
		return nil
	}
	total := 0
	for i, h := range c.HoursPerMonth {
		if h <= 0 {
			return fmt.Errorf("hours_per_month[%d] must be > 0", i)
		}
		total += h
	}
	if total != HoursPerYear {
		return fmt.Errorf("hours_per_month must sum to %d, got %d", HoursPerYear, total)
	}
	return nil
}

// StartHour is the index of the first hour of startMonth in an unrotated year.
func (c Calendar) StartHour(startMonth int) int {
	return startHour(startMonth, c.Hours())
}

// ResampleToMonthly splits an hourly series into the calendar's months and returns,
// per month, the peak (max, kW) and the baseload (sum, kWh).
// hourly must hold HoursPerYear values.
func (c Calendar) ResampleToMonthly(hourly []float64) (peak, baseload []float64) {
	peak = make([]float64, MonthsPerYear)
	baseload = make([]float64, MonthsPerYear)
	start := 0
	for i, h := range c.Hours() {
		chunk := hourly[start : start+h]
		peak[i] = floats.Max(chunk)
		baseload[i] = floats.Sum(chunk)
		start += h
	}
	return peak, baseload
}

// Rotate applies RotateForStartMonth with the calendar's month lengths.
func (c Calendar) Rotate(series []float64, startMonth int) []float64 {
	return RotateForStartMonth(series, startMonth, c.Hours())
}

// RotateBack undoes Rotate.
func (c Calendar) RotateBack(series []float64, startMonth int) []float64 {
	if startMonth == 1 {
		return series
	}
	s := len(series) - startHour(startMonth, c.Hours())
	return concat(series[s:], series[:s])
}

// RotateForStartMonth returns series cyclically shifted to the left so that index 0 is the
// first hour of startMonth. Month 1 returns series itself.
func RotateForStartMonth(series []float64, startMonth int, hoursPerMonth [MonthsPerYear]int) []float64 {
	if startMonth == 1 {
		return series
	}
	s := startHour(startMonth, hoursPerMonth)
	return concat(series[s:], series[:s])
}

// RotateMonths shifts a twelve-value monthly series so that index 0 is startMonth.
func RotateMonths(values []float64, startMonth int) []float64 {
	if startMonth == 1 {
		return values
	}
	return concat(values[startMonth-1:], values[:startMonth-1])
}

// Tile repeats series n times end to end.
func Tile(series []float64, n int) []float64 {
	out := make([]float64, 0, len(series)*n)
	for i := 0; i < n; i++ {
		out = append(out, series...)
	}
	return out
}

var ErrStartMonth = errors.New("start month must be in [1, 12]")

// ValidateStartMonth reports whether m is a calendar month.
func ValidateStartMonth(m int) error {
	if m < 1 || m > MonthsPerYear {
		return fmt.Errorf("%w, got %d", ErrStartMonth, m)
	}
	return nil
}

func startHour(startMonth int, hoursPerMonth [MonthsPerYear]int) int {
	h := 0
	for i := 0; i < startMonth-1; i++ {
		h += hoursPerMonth[i]
	}
	return h
}

func concat(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
