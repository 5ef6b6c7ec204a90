package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"geothermal-load/internal/load"
)

// CSVReader reads load columns from delimited text files.
type CSVReader struct{}

var _ load.ProfileReader = CSVReader{}

// ReadColumns opens the file at source and extracts the requested columns.
func (CSVReader) ReadColumns(source string, format load.ProfileFormat, columns ...int) ([][]float64, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadColumnsFrom(f, format, columns...)
}

// ReadColumnsFrom extracts the requested zero-based columns from delimited text.
// Every row must hold every requested column.
func ReadColumnsFrom(r io.Reader, format load.ProfileFormat, columns ...int) ([][]float64, error) {
	sep := format.Separator
	if sep == 0 {
		sep = ';'
	}
	dec := format.DecimalSeparator
	if dec == 0 {
		dec = '.'
	}
	if sep == dec {
		return nil, fmt.Errorf("separator and decimal separator are both %q", sep)
	}
	if len(columns) == 0 {
		return nil, errors.New("no columns requested")
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	out := make([][]float64, len(columns))
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if row == 1 && format.Header {
			continue
		}
		for i, col := range columns {
			if col < 0 || col >= len(rec) {
				return nil, fmt.Errorf("row %d: column %d missing (%d fields)", row, col, len(rec))
			}
			v, err := parseNumber(rec[col], dec)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", row, col, err)
			}
			out[i] = append(out[i], v)
		}
	}
	return out, nil
}

func parseNumber(field string, dec rune) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, errors.New("empty value")
	}
	if dec != '.' {
		s = strings.Replace(s, string(dec), ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
