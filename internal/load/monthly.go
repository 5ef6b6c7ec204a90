package load

import (
	"fmt"
	"math"
	"slices"

	"geothermal-load/internal/calendar"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Monthly is a geothermal load with a monthly resolution: baseloads in kWh/month and
// peaks in kW. All four arrays are stored raw, January first, without DHW.
type Monthly struct {
	Base

	baseloadHeating []float64
	baseloadCooling []float64
	peakHeating     []float64
	peakCooling     []float64
	dhw             float64
}

// NewMonthly builds a monthly load. Nil arrays are replaced by zeros.
func NewMonthly(baseloadHeating, baseloadCooling, peakHeating, peakCooling []float64, simulationPeriod int, dhw float64, opts ...Option) (*Monthly, error) {
	base, err := newBase(false, simulationPeriod, opts)
	if err != nil {
		return nil, err
	}
	m := &Monthly{Base: base}
	for _, f := range []struct {
		dst *[]float64
		src []float64
	}{
		{&m.baseloadHeating, baseloadHeating},
		{&m.baseloadCooling, baseloadCooling},
		{&m.peakHeating, peakHeating},
		{&m.peakCooling, peakCooling},
	} {
		if f.src == nil {
			*f.dst = make([]float64, calendar.MonthsPerYear)
			continue
		}
		s, err := m.series(f.src)
		if err != nil {
			return nil, err
		}
		*f.dst = s
	}
	if dhw < 0 || math.IsNaN(dhw) || math.IsInf(dhw, 0) {
		return nil, fmt.Errorf("%w: dhw must be >= 0, got %g", ErrInvalidParameter, dhw)
	}
	m.dhw = dhw
	return m, nil
}

// CheckInput reports whether candidate is a valid monthly series.
func (m *Monthly) CheckInput(candidate any) bool {
	_, err := m.series(candidate)
	return err == nil
}

func (m *Monthly) series(candidate any) ([]float64, error) {
	s, err := ToSeries(candidate, calendar.MonthsPerYear)
	if err != nil {
		m.logger.Error("monthly load rejected", zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (m *Monthly) set(dst *[]float64, load []float64) error {
	s, err := m.series(load)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func (m *Monthly) SetBaseloadHeating(load []float64) error { return m.set(&m.baseloadHeating, load) }

func (m *Monthly) SetBaseloadCooling(load []float64) error { return m.set(&m.baseloadCooling, load) }

func (m *Monthly) SetPeakHeating(load []float64) error { return m.set(&m.peakHeating, load) }

func (m *Monthly) SetPeakCooling(load []float64) error { return m.set(&m.peakCooling, load) }

func (m *Monthly) DHW() float64 { return m.dhw }

// hours returns the calendar month lengths as floats.
func (m *Monthly) hours() []float64 {
	h := m.calendar.Hours()
	out := make([]float64, len(h))
	for i, v := range h {
		out[i] = float64(v)
	}
	return out
}

func (m *Monthly) baseloadHeatingRaw() []float64 {
	out := slices.Clone(m.baseloadHeating)
	for i, h := range m.hours() {
		out[i] += m.dhw / calendar.HoursPerYear * h
	}
	return out
}

// BaseloadHeating includes DHW spread over the months by their length.
func (m *Monthly) BaseloadHeating() []float64 {
	return calendar.RotateMonths(m.baseloadHeatingRaw(), m.startMonth)
}

func (m *Monthly) BaseloadCooling() []float64 {
	return calendar.RotateMonths(slices.Clone(m.baseloadCooling), m.startMonth)
}

// PeakHeating never falls below the month's average power.
func (m *Monthly) PeakHeating() []float64 {
	baseload := m.baseloadHeatingRaw()
	hours := m.hours()
	out := make([]float64, calendar.MonthsPerYear)
	for i := range out {
		out[i] = math.Max(m.peakHeating[i]+m.dhw/calendar.HoursPerYear, baseload[i]/hours[i])
	}
	return calendar.RotateMonths(out, m.startMonth)
}

// PeakCooling never falls below the month's average power.
func (m *Monthly) PeakCooling() []float64 {
	hours := m.hours()
	out := make([]float64, calendar.MonthsPerYear)
	for i := range out {
		out[i] = math.Max(m.peakCooling[i], m.baseloadCooling[i]/hours[i])
	}
	return calendar.RotateMonths(out, m.startMonth)
}

func (m *Monthly) Imbalance() float64 { return MonthlyImbalance(m) }

// Equal reports whether other is a monthly load with the same views and simulation period.
func (m *Monthly) Equal(other LoadData) bool {
	o, ok := other.(*Monthly)
	if !ok || o == nil || m == nil {
		return false
	}
	return m.simulationPeriod == o.simulationPeriod &&
		slices.Equal(m.BaseloadHeating(), o.BaseloadHeating()) &&
		slices.Equal(m.BaseloadCooling(), o.BaseloadCooling()) &&
		slices.Equal(m.PeakHeating(), o.PeakHeating()) &&
		slices.Equal(m.PeakCooling(), o.PeakCooling())
}

// Combine sums m with a monthly or an hourly load into a new monthly load.
// Hourly loads are resampled to monthly peaks and baseloads first.
func (m *Monthly) Combine(other LoadData) (LoadData, error) {
	var (
		bh, bc, ph, pc []float64
		years          int
		dhw            float64
	)
	switch o := other.(type) {
	case *Monthly:
		if o == nil {
			break
		}
		bh, bc, ph, pc = o.baseloadHeating, o.baseloadCooling, o.peakHeating, o.peakCooling
		years, dhw = o.simulationPeriod, o.dhw
	case *Hourly:
		if o == nil {
			break
		}
		ph, bh = m.calendar.ResampleToMonthly(o.heating)
		pc, bc = m.calendar.ResampleToMonthly(o.cooling)
		years, dhw = o.simulationPeriod, o.dhw
	}
	if bh == nil {
		return nil, fmt.Errorf("%w: monthly load cannot combine with %T", ErrIncompatibleOperand, other)
	}

	sum := func(a, b []float64) []float64 {
		out := slices.Clone(a)
		floats.Add(out, b)
		return out
	}
	return &Monthly{
		Base:            m.Base.derive(m.warnSimulationPeriod(years)),
		baseloadHeating: sum(m.baseloadHeating, bh),
		baseloadCooling: sum(m.baseloadCooling, bc),
		peakHeating:     sum(m.peakHeating, ph),
		peakCooling:     sum(m.peakCooling, pc),
		dhw:             m.dhw + dhw,
	}, nil
}

// Add combines m with other, falling back to other's combination strategy.
func (m *Monthly) Add(other LoadData) (LoadData, error) {
	return Add(m, other)
}
