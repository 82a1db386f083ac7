package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the reference table failed to load or is empty.
	ErrDataUnavailable = errors.New("food list not available")

	// ErrFoodNotFound means a food name has no exact match in the table.
	ErrFoodNotFound = errors.New("food not found")

	// ErrInvalidWeight rejects weights that cannot be scaled (negative, NaN, Inf).
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrOutOfRange means a scaled nutrient value is not a finite number,
	// such as a weight large enough to overflow float64.
	ErrOutOfRange = errors.New("nutrient value out of range")

	// ErrCorruptData means the reference file parsed but holds values that
	// cannot be normalized.
	ErrCorruptData = errors.New("corrupt reference data")
)

// FoodNotFoundError carries the name that failed to match.
type FoodNotFoundError struct {
	Name string
}

func (e *FoodNotFoundError) Error() string {
	return fmt.Sprintf("food %q not found", e.Name)
}

// Is lets errors.Is(err, ErrFoodNotFound) match.
func (e *FoodNotFoundError) Is(target error) bool {
	return target == ErrFoodNotFound
}
