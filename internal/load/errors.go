package load

import "errors"

var (
	// ErrInvalidLoadInput is returned when a load array is not a sequence of numbers,
	// has the wrong length or holds a negative or non-finite value.
	ErrInvalidLoadInput = errors.New("invalid load input")

	// ErrIncompatibleOperand is returned when two loads have no combination strategy.
	ErrIncompatibleOperand = errors.New("incompatible operand")

	// ErrInvalidParameter covers simulation period, start month, dhw and calendar settings.
	ErrInvalidParameter = errors.New("invalid parameter")
)
