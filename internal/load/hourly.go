package load

import (
	"fmt"
	"math"
	"slices"

	"geothermal-load/internal/calendar"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Hourly is a geothermal load with an hourly resolution.
// heating and cooling are stored raw: unrotated and without domestic hot water.
type Hourly struct {
	Base

	heating []float64 // kWh/h
	cooling []float64 // kWh/h
	dhw     float64   // kWh/year
}

// NewHourly builds an hourly load. A nil heating or cooling array is replaced by zeros.
func NewHourly(heating, cooling []float64, simulationPeriod int, dhw float64, opts ...Option) (*Hourly, error) {
	base, err := newBase(true, simulationPeriod, opts)
	if err != nil {
		return nil, err
	}
	h := &Hourly{
		Base:    base,
		heating: make([]float64, calendar.HoursPerYear),
		cooling: make([]float64, calendar.HoursPerYear),
	}
	if heating != nil {
		if err := h.SetHeating(heating); err != nil {
			return nil, err
		}
	}
	if cooling != nil {
		if err := h.SetCooling(cooling); err != nil {
			return nil, err
		}
	}
	if err := h.SetDHW(dhw); err != nil {
		return nil, err
	}
	return h, nil
}

// CheckInput reports whether candidate is a valid hourly series.
func (h *Hourly) CheckInput(candidate any) bool {
	_, err := h.series(candidate)
	return err == nil
}

func (h *Hourly) series(candidate any) ([]float64, error) {
	s, err := ToSeries(candidate, calendar.HoursPerYear)
	if err != nil {
		h.logger.Error("hourly load rejected", zap.Error(err))
		return nil, err
	}
	return s, nil
}

// SetHeating replaces the stored heating load. On error the previous load is kept.
func (h *Hourly) SetHeating(load []float64) error {
	s, err := h.series(load)
	if err != nil {
		return err
	}
	h.heating = s
	return nil
}

// SetCooling replaces the stored cooling load. On error the previous load is kept.
func (h *Hourly) SetCooling(load []float64) error {
	s, err := h.series(load)
	if err != nil {
		return err
	}
	h.cooling = s
	return nil
}

func (h *Hourly) ResetHeating() { h.heating = make([]float64, calendar.HoursPerYear) }

func (h *Hourly) ResetCooling() { h.cooling = make([]float64, calendar.HoursPerYear) }

func (h *Hourly) DHW() float64 { return h.dhw }

// SetDHW sets the yearly domestic hot water demand in kWh.
func (h *Hourly) SetDHW(kWh float64) error {
	if kWh < 0 || math.IsNaN(kWh) || math.IsInf(kWh, 0) {
		return fmt.Errorf("%w: dhw must be >= 0, got %g", ErrInvalidParameter, kWh)
	}
	h.dhw = kWh
	return nil
}

func (h *Hourly) ResetDHW() { h.dhw = 0 }

// StoredHeating returns a copy of the raw heating array.
func (h *Hourly) StoredHeating() []float64 { return slices.Clone(h.heating) }

// StoredCooling returns a copy of the raw cooling array.
func (h *Hourly) StoredCooling() []float64 { return slices.Clone(h.cooling) }

// HeatingLoad returns the hourly heating in kWh/h including DHW, starting at the start month.
func (h *Hourly) HeatingLoad() []float64 {
	out := make([]float64, len(h.heating))
	dhw := h.dhw / calendar.HoursPerYear
	for i, v := range h.heating {
		out[i] = v + dhw
	}
	return h.calendar.Rotate(out, h.startMonth)
}

// CoolingLoad returns the hourly cooling in kWh/h, starting at the start month.
func (h *Hourly) CoolingLoad() []float64 {
	return h.calendar.Rotate(slices.Clone(h.cooling), h.startMonth)
}

func (h *Hourly) PeakHeating() []float64 {
	peak, _ := h.calendar.ResampleToMonthly(h.HeatingLoad())
	return peak
}

func (h *Hourly) PeakCooling() []float64 {
	peak, _ := h.calendar.ResampleToMonthly(h.CoolingLoad())
	return peak
}

func (h *Hourly) BaseloadHeating() []float64 {
	_, baseload := h.calendar.ResampleToMonthly(h.HeatingLoad())
	return baseload
}

func (h *Hourly) BaseloadCooling() []float64 {
	_, baseload := h.calendar.ResampleToMonthly(h.CoolingLoad())
	return baseload
}

func (h *Hourly) HeatingLoadSimulationPeriod() []float64 {
	return calendar.Tile(h.HeatingLoad(), h.simulationPeriod)
}

func (h *Hourly) CoolingLoadSimulationPeriod() []float64 {
	return calendar.Tile(h.CoolingLoad(), h.simulationPeriod)
}

// LoadSimulationPeriod is the net hourly load (cooling minus heating) over the whole
// simulation period.
func (h *Hourly) LoadSimulationPeriod() []float64 {
	out := h.CoolingLoadSimulationPeriod()
	floats.Sub(out, h.HeatingLoadSimulationPeriod())
	return out
}

func (h *Hourly) Imbalance() float64 {
	return floats.Sum(h.CoolingLoad()) - floats.Sum(h.HeatingLoad())
}

// Equal reports whether other is an hourly load with the same rotated heating and cooling
// and the same simulation period.
func (h *Hourly) Equal(other LoadData) bool {
	o, ok := other.(*Hourly)
	if !ok || o == nil || h == nil {
		return false
	}
	if h == o {
		return true
	}
	return h.simulationPeriod == o.simulationPeriod &&
		slices.Equal(h.CoolingLoad(), o.CoolingLoad()) &&
		slices.Equal(h.HeatingLoad(), o.HeatingLoad())
}

// Merge returns a new load holding the sum of both loads. The simulation period is the
// maximum of both; the start month, calendar and logger are taken from h.
func (h *Hourly) Merge(other *Hourly) *Hourly {
	heating := slices.Clone(h.heating)
	floats.Add(heating, other.heating)
	cooling := slices.Clone(h.cooling)
	floats.Add(cooling, other.cooling)

	return &Hourly{
		Base:    h.Base.derive(h.warnSimulationPeriod(other.simulationPeriod)),
		heating: heating,
		cooling: cooling,
		dhw:     h.dhw + other.dhw,
	}
}

// Combine merges other into a new load when other is hourly.
func (h *Hourly) Combine(other LoadData) (LoadData, error) {
	if o, ok := other.(*Hourly); ok && o != nil {
		return h.Merge(o), nil
	}
	return nil, fmt.Errorf("%w: hourly load cannot combine with %T", ErrIncompatibleOperand, other)
}

// Add combines h with other, falling back to other's combination strategy.
func (h *Hourly) Add(other LoadData) (LoadData, error) {
	return Add(h, other)
}
