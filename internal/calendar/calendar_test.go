package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp() []float64 {
	out := make([]float64, HoursPerYear)
	for i := range out {
		out[i] = float64(i % 100)
	}
	return out
}

func TestDefaultCalendarCoversYear(t *testing.T) {
	require.NoError(t, Default().Validate())
	total := 0
	for _, h := range Default().Hours() {
		total += h
	}
	assert.Equal(t, HoursPerYear, total)

	for _, h := range Equal().Hours() {
		assert.Equal(t, 730, h)
	}
}

func TestValidateRejectsBadCalendar(t *testing.T) {
	c := Default()
	c.HoursPerMonth[0] = 743
	assert.Error(t, c.Validate())

	c = Default()
	c.HoursPerMonth[3] = 0
	assert.Error(t, c.Validate())
}

func TestResampleToMonthly(t *testing.T) {
	series := make([]float64, HoursPerYear)
	series[0] = 5
	series[743] = 7
	series[744] = 3
	series[HoursPerYear-1] = 2

	peak, baseload := Default().ResampleToMonthly(series)
	require.Len(t, peak, MonthsPerYear)
	require.Len(t, baseload, MonthsPerYear)

	assert.Equal(t, 7.0, peak[0])
	assert.Equal(t, 12.0, baseload[0])
	assert.Equal(t, 3.0, peak[1])
	assert.Equal(t, 3.0, baseload[1])
	assert.Equal(t, 2.0, peak[11])
	assert.Equal(t, 0.0, baseload[5])
}

func TestResamplePreservesEnergy(t *testing.T) {
	series := ramp()
	for _, c := range []Calendar{Default(), Equal()} {
		_, baseload := c.ResampleToMonthly(series)
		total := 0.0
		for _, v := range baseload {
			total += v
		}
		want := 0.0
		for _, v := range series {
			want += v
		}
		assert.InDelta(t, want, total, 1e-6)
	}
}

func TestResampleAllMonthsEqualBoundaries(t *testing.T) {
	series := make([]float64, HoursPerYear)
	series[729] = 1
	series[730] = 2

	peak, _ := Equal().ResampleToMonthly(series)
	assert.Equal(t, 1.0, peak[0])
	assert.Equal(t, 2.0, peak[1])
}

func TestRotateForStartMonth(t *testing.T) {
	series := ramp()

	same := RotateForStartMonth(series, 1, DefaultHoursPerMonth)
	assert.Equal(t, series, same)

	rotated := RotateForStartMonth(series, 2, DefaultHoursPerMonth)
	require.Len(t, rotated, HoursPerYear)
	assert.Equal(t, series[744], rotated[0])
	assert.Equal(t, series[743], rotated[HoursPerYear-1])
}

func TestRotateIsLossless(t *testing.T) {
	series := ramp()
	for _, c := range []Calendar{Default(), Equal()} {
		for m := 2; m <= MonthsPerYear; m++ {
			rotated := c.Rotate(series, m)
			assert.Len(t, rotated, HoursPerYear)
			assert.Equal(t, series, c.RotateBack(rotated, m), "month %d", m)
		}
	}
}

func TestStartHour(t *testing.T) {
	assert.Equal(t, 0, Default().StartHour(1))
	assert.Equal(t, 744+672, Default().StartHour(3))
	assert.Equal(t, 730*8, Equal().StartHour(9))
}

func TestRotateMonths(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	assert.Equal(t, values, RotateMonths(values, 1))
	assert.Equal(t, []float64{9, 10, 11, 12, 1, 2, 3, 4, 5, 6, 7, 8}, RotateMonths(values, 9))
}

func TestTile(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 1, 2, 1, 2}, Tile([]float64{1, 2}, 3))
	assert.Empty(t, Tile([]float64{1, 2}, 0))
}

func TestValidateStartMonth(t *testing.T) {
	assert.NoError(t, ValidateStartMonth(1))
	assert.NoError(t, ValidateStartMonth(12))
	assert.ErrorIs(t, ValidateStartMonth(0), ErrStartMonth)
	assert.ErrorIs(t, ValidateStartMonth(13), ErrStartMonth)
}
