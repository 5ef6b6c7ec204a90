package load

import (
	"fmt"

	"go.uber.org/zap"
)

// ProfileFormat describes the layout of a tabular load file.
type ProfileFormat struct {
	Header           bool
	Separator        rune
	DecimalSeparator rune
}

// DefaultProfileFormat is a headed file with ';' between columns and '.' as decimal mark.
func DefaultProfileFormat() ProfileFormat {
	return ProfileFormat{Header: true, Separator: ';', DecimalSeparator: '.'}
}

// ProfileReader extracts numeric columns, by zero-based index, from a tabular source.
type ProfileReader interface {
	ReadColumns(source string, format ProfileFormat, columns ...int) ([][]float64, error)
}

// LoadHourlyProfile reads heating and cooling columns from source and stores them.
// Both columns are validated before either is stored.
func (h *Hourly) LoadHourlyProfile(r ProfileReader, source string, format ProfileFormat, heatingCol, coolingCol int) error {
	cols, err := r.ReadColumns(source, format, heatingCol, coolingCol)
	if err != nil {
		return fmt.Errorf("read hourly profile %s: %w", source, err)
	}
	if len(cols) != 2 {
		return fmt.Errorf("read hourly profile %s: expected 2 columns, got %d", source, len(cols))
	}
	heating, err := h.series(cols[0])
	if err != nil {
		return fmt.Errorf("heating column %d: %w", heatingCol, err)
	}
	cooling, err := h.series(cols[1])
	if err != nil {
		return fmt.Errorf("cooling column %d: %w", coolingCol, err)
	}
	h.heating, h.cooling = heating, cooling

	h.logger.Info("hourly profile loaded", zap.String("source", source))
	return nil
}
