package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCalories normalizes a raw calories cell. An empty cell is zero.
// Tokens such as NaN or Inf parse as floats but are corrupt data, matching
// ParseIron.
func ParseCalories(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: calories value %q: %w", ErrCorruptData, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: calories value %q is not finite", ErrCorruptData, raw)
	}
	return v, nil
}
