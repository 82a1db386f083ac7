package domain

import (
	"fmt"
	"math"
	"strconv"
)

const (
	caloriesPrecision = 2
	ironPrecision     = 6

	// milligramsToGrams re-expresses the per-100g iron value in grams.
	milligramsToGrams = 1e-3
)

// Calculate scales the nutrients of the named food to weight grams. The name
// must match a row exactly; otherwise the error is a *FoodNotFoundError.
// Scaled values that overflow float64 fail with ErrOutOfRange.
// Calculate has no side effects and is safe for concurrent use.
func Calculate(t *Table, foodName string, weight float64) (Result, error) {
	food, ok := t.Lookup(foodName)
	if !ok {
		return Result{}, &FoodNotFoundError{Name: foodName}
	}

	multiplier := weight / 100.0

	res := Result{
		ID:       food.ID,
		Name:     food.Name,
		Weight:   weight,
		Calories: round(food.Calories*multiplier, caloriesPrecision),
		Iron:     round(food.Iron*milligramsToGrams*multiplier, ironPrecision),
	}
	if !isFinite(res.Calories) || !isFinite(res.Iron) {
		return Result{}, fmt.Errorf("%w: %v g of %q", ErrOutOfRange, weight, food.Name)
	}
	return res, nil
}

// ValidateWeight rejects weights that cannot be meaningfully scaled. Zero is
// accepted and yields zero nutrients.
func ValidateWeight(weight float64) error {
	switch {
	case math.IsNaN(weight), math.IsInf(weight, 0):
		return fmt.Errorf("%w: %v is not finite", ErrInvalidWeight, weight)
	case weight < 0:
		return fmt.Errorf("%w: %v is negative", ErrInvalidWeight, weight)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// round rounds x to places decimal digits using the exact decimal expansion
// of x, so 0.000705 stays 0.000705 instead of drifting through x*1e6.
func round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}
