package load

import (
	"fmt"

	"geothermal-load/internal/calendar"

	"go.uber.org/zap"
)

// DefaultSimulationPeriod is the simulation horizon in years used when none is given.
const DefaultSimulationPeriod = 20

// LoadData is the read-only contract shared by every load representation.
// Monthly views hold calendar.MonthsPerYear values, rotated to the start month.
type LoadData interface {
	// HourlyResolution reports whether the load is stored per hour.
	HourlyResolution() bool
	// CheckInput reports whether candidate can be stored as one of the load's series.
	// It never panics and logs the violation.
	CheckInput(candidate any) bool

	PeakHeating() []float64     // kW
	PeakCooling() []float64     // kW
	BaseloadHeating() []float64 // kWh/month
	BaseloadCooling() []float64 // kWh/month

	// Imbalance is the yearly cooling minus heating energy in kWh.
	// A positive imbalance means the field is injection dominated and heats up every year.
	Imbalance() float64

	SimulationPeriod() int
	StartMonth() int
}

// MonthlyImbalance computes the imbalance from the monthly baseloads.
func MonthlyImbalance(l LoadData) float64 {
	cooling := l.BaseloadCooling()
	heating := l.BaseloadHeating()
	total := 0.0
	for i := range cooling {
		total += cooling[i] - heating[i]
	}
	return total
}

// Base holds what every load variant shares: the resolution flag, which never changes
// after construction, and the simulation context.
type Base struct {
	hourlyResolution bool
	simulationPeriod int
	startMonth       int
	calendar         calendar.Calendar
	logger           *zap.Logger
}

// Option configures a load at construction.
type Option func(*Base)

// WithStartMonth sets the calendar month (1-12) at which the simulation starts.
func WithStartMonth(m int) Option {
	return func(b *Base) { b.startMonth = m }
}

// WithCalendar sets the month split used for rotation and resampling.
func WithCalendar(c calendar.Calendar) Option {
	return func(b *Base) { b.calendar = c }
}

// WithLogger sets the logger validation errors and merge warnings are written to.
func WithLogger(l *zap.Logger) Option {
	return func(b *Base) {
		if l != nil {
			b.logger = l
		}
	}
}

func newBase(hourlyResolution bool, simulationPeriod int, opts []Option) (Base, error) {
	b := Base{
		hourlyResolution: hourlyResolution,
		simulationPeriod: simulationPeriod,
		startMonth:       1,
		calendar:         calendar.Default(),
		logger:           zap.L(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.validate(); err != nil {
		return Base{}, err
	}
	return b, nil
}

func (b Base) validate() error {
	if b.simulationPeriod < 1 {
		return fmt.Errorf("%w: simulation period must be >= 1, got %d", ErrInvalidParameter, b.simulationPeriod)
	}
	if err := calendar.ValidateStartMonth(b.startMonth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := b.calendar.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return nil
}

// derive returns a copy of b with another simulation period.
func (b Base) derive(simulationPeriod int) Base {
	b.simulationPeriod = simulationPeriod
	return b
}

func (b *Base) HourlyResolution() bool { return b.hourlyResolution }

func (b *Base) SimulationPeriod() int { return b.simulationPeriod }

func (b *Base) StartMonth() int { return b.startMonth }

func (b *Base) Calendar() calendar.Calendar { return b.calendar }

func (b *Base) Logger() *zap.Logger { return b.logger }

func (b *Base) SetSimulationPeriod(years int) error {
	next := *b
	next.simulationPeriod = years
	if err := next.validate(); err != nil {
		return err
	}
	b.simulationPeriod = years
	return nil
}

func (b *Base) SetStartMonth(m int) error {
	next := *b
	next.startMonth = m
	if err := next.validate(); err != nil {
		return err
	}
	b.startMonth = m
	return nil
}

func (b *Base) SetCalendar(c calendar.Calendar) error {
	next := *b
	next.calendar = c
	if err := next.validate(); err != nil {
		return err
	}
	b.calendar = c
	return nil
}

// warnSimulationPeriod logs when two combined loads disagree on the simulation period
// and returns the period the result uses.
func (b *Base) warnSimulationPeriod(other int) int {
	years := max(b.simulationPeriod, other)
	if b.simulationPeriod != other {
		b.logger.Warn("simulation periods of the combined loads differ, the maximum is taken",
			zap.Int("left", b.simulationPeriod),
			zap.Int("right", other),
			zap.Int("simulation_period", years),
		)
	}
	return years
}
