package load

import (
	"errors"
	"testing"

	"geothermal-load/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func constant(v float64) []float64 {
	out := make([]float64, calendar.HoursPerYear)
	for i := range out {
		out[i] = v
	}
	return out
}

func hourIndex() []float64 {
	out := make([]float64, calendar.HoursPerYear)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func observed(level zap.AtomicLevel) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestNewHourlyDefaults(t *testing.T) {
	h, err := NewHourly(nil, nil, DefaultSimulationPeriod, 0)
	require.NoError(t, err)

	assert.True(t, h.HourlyResolution())
	assert.Equal(t, 20, h.SimulationPeriod())
	assert.Equal(t, 1, h.StartMonth())
	assert.Equal(t, constant(0), h.HeatingLoad())
	assert.Equal(t, constant(0), h.CoolingLoad())
	assert.Equal(t, 0.0, h.Imbalance())
}

func TestNewHourlyRejectsBadParameters(t *testing.T) {
	_, err := NewHourly(nil, nil, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewHourly(nil, nil, 20, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewHourly(nil, nil, 20, 0, WithStartMonth(13))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewHourly(constant(-1), nil, 20, 0)
	assert.ErrorIs(t, err, ErrInvalidLoadInput)
}

func TestHourlyRoundTrip(t *testing.T) {
	heating := hourIndex()
	cooling := constant(2.5)

	h, err := NewHourly(heating, cooling, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, heating, h.HeatingLoad())
	assert.Equal(t, cooling, h.CoolingLoad())

	// The stored array is a private copy.
	heating[0] = 99
	assert.Equal(t, 0.0, h.HeatingLoad()[0])
	got := h.HeatingLoad()
	got[1] = 99
	assert.Equal(t, 1.0, h.HeatingLoad()[1])
}

func TestCheckInput(t *testing.T) {
	logger, logs := observed(zap.NewAtomicLevelAt(zap.ErrorLevel))
	h, err := NewHourly(nil, nil, 20, 0, WithLogger(logger))
	require.NoError(t, err)

	var arr [calendar.HoursPerYear]float64
	assert.True(t, h.CheckInput(constant(1)))
	assert.True(t, h.CheckInput(arr))
	assert.True(t, h.CheckInput(make([]int, calendar.HoursPerYear)))

	assert.False(t, h.CheckInput(3.0))
	assert.False(t, h.CheckInput("load"))
	assert.False(t, h.CheckInput(nil))
	assert.False(t, h.CheckInput(make([]float64, calendar.HoursPerYear-1)))

	negative := constant(1)
	negative[4000] = -0.1
	assert.False(t, h.CheckInput(negative))

	assert.Equal(t, 5, logs.FilterMessage("hourly load rejected").Len())
}

func TestToSeriesFromDecodedJSON(t *testing.T) {
	raw := make([]any, calendar.HoursPerYear)
	for i := range raw {
		raw[i] = 1.5
	}
	s, err := ToSeries(raw, calendar.HoursPerYear)
	require.NoError(t, err)
	assert.Equal(t, constant(1.5), s)

	raw[10] = "x"
	_, err = ToSeries(raw, calendar.HoursPerYear)
	assert.ErrorIs(t, err, ErrInvalidLoadInput)

	_, err = ToSeries(42.0, calendar.HoursPerYear)
	assert.ErrorIs(t, err, ErrInvalidLoadInput)
}

func TestSettersLeaveStateOnFailure(t *testing.T) {
	h, err := NewHourly(constant(1), constant(2), 20, 0)
	require.NoError(t, err)

	negative := constant(1)
	negative[17] = -3

	for _, bad := range [][]float64{make([]float64, calendar.HoursPerYear-1), negative, nil} {
		assert.ErrorIs(t, h.SetHeating(bad), ErrInvalidLoadInput)
		assert.ErrorIs(t, h.SetCooling(bad), ErrInvalidLoadInput)
	}
	assert.Equal(t, constant(1), h.HeatingLoad())
	assert.Equal(t, constant(2), h.CoolingLoad())

	require.NoError(t, h.SetHeating(constant(3)))
	assert.Equal(t, constant(3), h.HeatingLoad())
}

func TestResets(t *testing.T) {
	h, err := NewHourly(constant(1), constant(2), 20, 100)
	require.NoError(t, err)

	h.ResetHeating()
	h.ResetCooling()
	h.ResetDHW()
	assert.Equal(t, constant(0), h.HeatingLoad())
	assert.Equal(t, constant(0), h.CoolingLoad())
	assert.Equal(t, 0.0, h.DHW())
}

func TestStartMonthRotation(t *testing.T) {
	h, err := NewHourly(hourIndex(), hourIndex(), 20, 0, WithStartMonth(3))
	require.NoError(t, err)

	start := calendar.Default().StartHour(3)
	heating := h.HeatingLoad()
	assert.Equal(t, float64(start), heating[0])
	assert.Equal(t, float64(start-1), heating[calendar.HoursPerYear-1])
	assert.Equal(t, hourIndex(), h.StoredHeating())

	assert.Equal(t, h.PeakCooling()[0], float64(start+744-1))

	require.NoError(t, h.SetStartMonth(1))
	assert.Equal(t, hourIndex(), h.CoolingLoad())
	assert.ErrorIs(t, h.SetStartMonth(0), ErrInvalidParameter)
	assert.Equal(t, 1, h.StartMonth())
}

func TestDHWBlending(t *testing.T) {
	for m := 1; m <= calendar.MonthsPerYear; m++ {
		h, err := NewHourly(nil, nil, 20, 8760, WithStartMonth(m))
		require.NoError(t, err)
		assert.Equal(t, constant(1), h.HeatingLoad(), "start month %d", m)
		assert.Equal(t, constant(0), h.CoolingLoad())
	}
}

func TestMonthlyViews(t *testing.T) {
	h, err := NewHourly(constant(1), constant(2), 20, 0)
	require.NoError(t, err)

	hours := calendar.Default().Hours()
	for i, n := range hours {
		assert.Equal(t, 1.0, h.PeakHeating()[i])
		assert.Equal(t, 2.0, h.PeakCooling()[i])
		assert.Equal(t, float64(n), h.BaseloadHeating()[i])
		assert.Equal(t, float64(2*n), h.BaseloadCooling()[i])
	}

	require.NoError(t, h.SetCalendar(calendar.Equal()))
	assert.Equal(t, 730.0, h.BaseloadHeating()[1])
}

func TestImbalanceSign(t *testing.T) {
	h, err := NewHourly(constant(1), nil, 20, 0)
	require.NoError(t, err)
	assert.Less(t, h.Imbalance(), 0.0)
	assert.InDelta(t, -8760, h.Imbalance(), 1e-6)
	assert.InDelta(t, h.Imbalance(), MonthlyImbalance(h), 1e-6)

	c, err := NewHourly(nil, constant(1), 20, 0)
	require.NoError(t, err)
	assert.Greater(t, c.Imbalance(), 0.0)
}

func TestSimulationPeriodViews(t *testing.T) {
	h, err := NewHourly(constant(1), constant(3), 3, 0)
	require.NoError(t, err)

	assert.Len(t, h.HeatingLoadSimulationPeriod(), 3*calendar.HoursPerYear)
	assert.Len(t, h.CoolingLoadSimulationPeriod(), 3*calendar.HoursPerYear)

	net := h.LoadSimulationPeriod()
	require.Len(t, net, 3*calendar.HoursPerYear)
	for _, v := range net {
		assert.Equal(t, 2.0, v)
	}

	require.NoError(t, h.SetSimulationPeriod(1))
	assert.Len(t, h.LoadSimulationPeriod(), calendar.HoursPerYear)
	assert.ErrorIs(t, h.SetSimulationPeriod(0), ErrInvalidParameter)
}

func TestHourlyEquality(t *testing.T) {
	a, err := NewHourly(constant(1), constant(2), 20, 0)
	require.NoError(t, err)
	b, err := NewHourly(constant(1), constant(2), 20, 0)
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	c, err := NewHourly(constant(1), constant(2), 25, 0)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	// DHW counts through the heating load it produces.
	d, err := NewHourly(constant(0), constant(2), 20, 8760)
	require.NoError(t, err)
	assert.True(t, a.Equal(d))

	m, err := NewMonthly(nil, nil, nil, nil, 20, 0)
	require.NoError(t, err)
	assert.False(t, a.Equal(m))
	assert.False(t, a.Equal(nil))
	var nilHourly *Hourly
	assert.False(t, a.Equal(nilHourly))
}

func TestMerge(t *testing.T) {
	logger, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))

	a, err := NewHourly(constant(1), constant(2), 20, 0, WithLogger(logger))
	require.NoError(t, err)
	b, err := NewHourly(constant(3), constant(4), 25, 100, WithLogger(logger))
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	res, ok := sum.(*Hourly)
	require.True(t, ok)

	assert.Equal(t, constant(4), res.StoredHeating())
	assert.Equal(t, constant(6), res.StoredCooling())
	assert.Equal(t, 25, res.SimulationPeriod())
	assert.Equal(t, 100.0, res.DHW())
	assert.Equal(t, 1, logs.FilterMessageSnippet("simulation periods").Len())

	assert.Equal(t, constant(1), a.StoredHeating())
	assert.Equal(t, constant(2), a.StoredCooling())
	assert.Equal(t, 20, a.SimulationPeriod())
	assert.Equal(t, constant(3), b.StoredHeating())
	assert.Equal(t, 100.0, b.DHW())
}

func TestMergeSamePeriodDoesNotWarn(t *testing.T) {
	logger, logs := observed(zap.NewAtomicLevelAt(zap.WarnLevel))

	a, err := NewHourly(constant(1), nil, 20, 0, WithLogger(logger))
	require.NoError(t, err)
	b, err := NewHourly(constant(1), nil, 20, 0)
	require.NoError(t, err)

	res := a.Merge(b)
	assert.Equal(t, constant(2), res.StoredHeating())
	assert.Zero(t, logs.Len())
}

type fakeReader struct {
	cols [][]float64
	err  error
	got  []int
}

func (f *fakeReader) ReadColumns(source string, format ProfileFormat, columns ...int) ([][]float64, error) {
	f.got = columns
	return f.cols, f.err
}

func TestLoadHourlyProfile(t *testing.T) {
	h, err := NewHourly(nil, nil, 20, 0)
	require.NoError(t, err)

	r := &fakeReader{cols: [][]float64{constant(5), constant(6)}}
	require.NoError(t, h.LoadHourlyProfile(r, "profile.csv", DefaultProfileFormat(), 2, 3))
	assert.Equal(t, []int{2, 3}, r.got)
	assert.Equal(t, constant(5), h.HeatingLoad())
	assert.Equal(t, constant(6), h.CoolingLoad())
}

func TestLoadHourlyProfileValidatesBeforeStoring(t *testing.T) {
	h, err := NewHourly(constant(1), constant(1), 20, 0)
	require.NoError(t, err)

	r := &fakeReader{cols: [][]float64{constant(5), make([]float64, 100)}}
	err = h.LoadHourlyProfile(r, "short.csv", DefaultProfileFormat(), 0, 1)
	assert.ErrorIs(t, err, ErrInvalidLoadInput)
	assert.Equal(t, constant(1), h.HeatingLoad())

	parseErr := errors.New("boom")
	err = h.LoadHourlyProfile(&fakeReader{err: parseErr}, "bad.csv", DefaultProfileFormat(), 0, 1)
	assert.ErrorIs(t, err, parseErr)
}

type recordingPlotter struct {
	series []Series
	legend bool
}

func (p *recordingPlotter) Step(series []Series, baseline float64, legend bool) error {
	p.series = series
	p.legend = legend
	return nil
}

func TestLoadDuration(t *testing.T) {
	h, err := NewHourly(hourIndex(), constant(1), 20, 0)
	require.NoError(t, err)

	heating, cooling := h.LoadDuration()
	assert.Equal(t, float64(calendar.HoursPerYear-1), heating[0])
	assert.Equal(t, 0.0, heating[calendar.HoursPerYear-1])
	assert.Equal(t, -1.0, cooling[0])

	p := &recordingPlotter{}
	require.NoError(t, h.PlotLoadDuration(p, true))
	require.Len(t, p.series, 2)
	assert.Equal(t, "Heating", p.series[0].Label)
	assert.Equal(t, heating, p.series[0].Values)
	assert.True(t, p.legend)

	// Sorting works on copies.
	assert.Equal(t, hourIndex(), h.HeatingLoad())
}
