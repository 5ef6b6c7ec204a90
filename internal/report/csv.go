package report

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"geothermal-load/internal/load"
)

func WriteMonthlyCSV(out io.Writer, s Summary) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"month",
		"peak_heating_kw",
		"peak_cooling_kw",
		"baseload_heating_kwh",
		"baseload_cooling_kwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range s.Months {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Month),
			fmtFloat(r.PeakHeatingKW),
			fmtFloat(r.PeakCoolingKW),
			fmtFloat(r.BaseloadHeatingKWh),
			fmtFloat(r.BaseloadCoolingKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// DurationCSV renders step charts as CSV: one hour column followed by one column per
// series. The baseline is implied by the signs of the values.
type DurationCSV struct {
	Out io.Writer
}

var _ load.Plotter = DurationCSV{}

func (d DurationCSV) Step(series []load.Series, baseline float64, legend bool) error {
	if len(series) == 0 {
		return errors.New("no series to plot")
	}
	n := len(series[0].Values)
	for _, s := range series[1:] {
		if len(s.Values) != n {
			return errors.New("series lengths differ")
		}
	}

	w := csv.NewWriter(d.Out)
	if legend {
		header := []string{"hour"}
		for _, s := range series {
			header = append(header, s.Label)
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	row := make([]string, len(series)+1)
	for i := 0; i < n; i++ {
		row[0] = strconv.Itoa(i)
		for j, s := range series {
			v := s.Values[i] - baseline
			if v == 0 {
				v = 0 // no "-0.000000" for negated zero loads
			}
			row[j+1] = fmtFloat(v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
