package load

import (
	"errors"
	"fmt"
)

// Combiner is a load that knows how to add some other loads to itself.
// Combine returns an error wrapping ErrIncompatibleOperand for unsupported operands.
type Combiner interface {
	LoadData
	Combine(other LoadData) (LoadData, error)
}

// Add returns a new load holding a + b. The left operand's strategy is tried first, then
// the right operand's. Neither operand is modified.
func Add(a, b LoadData) (LoadData, error) {
	if c, ok := a.(Combiner); ok {
		res, err := c.Combine(b)
		if !errors.Is(err, ErrIncompatibleOperand) {
			return res, err
		}
	}
	if c, ok := b.(Combiner); ok {
		res, err := c.Combine(a)
		if !errors.Is(err, ErrIncompatibleOperand) {
			return res, err
		}
	}
	return nil, fmt.Errorf("%w: cannot add %T and %T", ErrIncompatibleOperand, a, b)
}

// Sum folds Add over loads from left to right. A single load is returned as is.
func Sum(loads ...LoadData) (LoadData, error) {
	if len(loads) == 0 {
		return nil, errors.New("no loads to sum")
	}
	acc := loads[0]
	for i, l := range loads[1:] {
		next, err := Add(acc, l)
		if err != nil {
			return nil, fmt.Errorf("load %d: %w", i+1, err)
		}
		acc = next
	}
	return acc, nil
}
