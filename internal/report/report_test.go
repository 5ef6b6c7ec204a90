package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"geothermal-load/internal/calendar"
	"geothermal-load/internal/config"
	"geothermal-load/internal/data"
	"geothermal-load/internal/load"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(v float64) []float64 {
	out := make([]float64, calendar.HoursPerYear)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestBuildSummaryHourly(t *testing.T) {
	h, err := load.NewHourly(constant(1), constant(2), 20, 0, load.WithStartMonth(11))
	require.NoError(t, err)

	s := BuildSummary(h)
	assert.True(t, s.HourlyResolution)
	assert.Equal(t, 11, s.StartMonth)
	require.Len(t, s.Months, 12)
	assert.Equal(t, 11, s.Months[0].Month)
	assert.Equal(t, 12, s.Months[1].Month)
	assert.Equal(t, 1, s.Months[2].Month)
	assert.Equal(t, 720.0, s.Months[0].BaseloadHeatingKWh)
	assert.Equal(t, 2.0, s.Months[0].PeakCoolingKW)

	assert.InDelta(t, 8760, s.HeatingEnergyKWh, 1e-6)
	assert.InDelta(t, 17520, s.CoolingEnergyKWh, 1e-6)
	assert.InDelta(t, 8760, s.ImbalanceKWh, 1e-6)
	require.NotNil(t, s.HeatingDuration)
	assert.Equal(t, 1.0, s.HeatingDuration.Peak)
	assert.InDelta(t, 8760, s.CoolingDuration.FullLoadHours, 1e-6)
}

func TestBuildSummaryMonthly(t *testing.T) {
	m, err := load.NewMonthly(nil, nil, nil, nil, 5, 0)
	require.NoError(t, err)

	s := BuildSummary(m)
	assert.False(t, s.HourlyResolution)
	assert.Equal(t, 5, s.SimulationPeriod)
	assert.Nil(t, s.HeatingDuration)
}

func TestWriteMonthlyCSV(t *testing.T) {
	h, err := load.NewHourly(constant(1), nil, 20, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMonthlyCSV(&buf, BuildSummary(h)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "index,month,peak_heating_kw,peak_cooling_kw,baseload_heating_kwh,baseload_cooling_kwh", lines[0])
	assert.Equal(t, "1,2,1.000000,0.000000,672.000000,0.000000", lines[2])
}

func TestDurationCSV(t *testing.T) {
	h, err := load.NewHourly(constant(2), constant(1), 20, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.PlotLoadDuration(DurationCSV{Out: &buf}, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, calendar.HoursPerYear+1)
	assert.Equal(t, "hour,Heating,Cooling", lines[0])
	assert.Equal(t, "0,2.000000,-1.000000", lines[1])

	err = DurationCSV{Out: &buf}.Step([]load.Series{{Values: []float64{1}}, {Values: nil}}, 0, false)
	assert.Error(t, err)
}

func writeProfile(t *testing.T, dir, name string, heating, cooling float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("heating;cooling\n")
	for i := 0; i < calendar.HoursPerYear; i++ {
		fmt.Fprintf(&b, "%g;%g\n", heating, cooling)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestEngineRun(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "office.csv", 1, 0)
	writeProfile(t, dir, "shop.csv", 0, 3)
	casePath := filepath.Join(dir, "case.yaml")
	require.NoError(t, os.WriteFile(casePath, []byte(`
name: campus
profiles:
  - name: office
    file: office.csv
  - name: shop
    file: shop.csv
    dhw: 8760
`), 0o644))

	cfg, err := config.Load(casePath)
	require.NoError(t, err)

	res, err := New(data.CSVReader{}, nil).Run(cfg)
	require.NoError(t, err)
	require.Len(t, res.Profiles, 2)

	total, ok := res.Total.(*load.Hourly)
	require.True(t, ok)
	assert.Equal(t, constant(2), total.HeatingLoad())
	assert.Equal(t, constant(3), total.CoolingLoad())
	assert.InDelta(t, 8760, res.Summary.ImbalanceKWh, 1e-6)

	require.Len(t, res.Ranking, 2)
	assert.Equal(t, "shop", res.Ranking[0].Name)
}

func TestEngineRunFailsOnBadProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("h;c\n1;2\n"), 0o644))
	cfg := &config.Config{
		SimulationPeriod: 20,
		StartMonth:       1,
		Profiles: []config.ProfileConfig{{
			Name: "bad", File: filepath.Join(dir, "bad.csv"), Separator: ";", DecimalSeparator: ".", CoolingColumn: 1,
		}},
	}
	_, err := New(data.CSVReader{}, nil).Run(cfg)
	assert.ErrorIs(t, err, load.ErrInvalidLoadInput)

	_, err = New(nil, nil).Run(cfg)
	assert.Error(t, err)
}
