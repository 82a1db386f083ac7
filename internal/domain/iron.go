package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// milligramSuffix is the only unit token found in the iron column.
const milligramSuffix = "mg"

// ParseIron normalizes a raw iron cell to milligrams. The cell is either a
// plain number or a number followed by whitespace and "mg". The suffix is
// stripped without converting; the numeric prefix is already in milligrams.
// An empty cell is zero. Anything else is corrupt data.
func ParseIron(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	fields := strings.Fields(s)
	switch {
	case len(fields) == 1:
		// "0.47" or "0.47mg"
		s = strings.TrimSuffix(fields[0], milligramSuffix)
	case len(fields) == 2 && fields[1] == milligramSuffix:
		s = fields[0]
	default:
		return 0, fmt.Errorf("%w: iron value %q", ErrCorruptData, raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: iron value %q: %w", ErrCorruptData, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: iron value %q is not finite", ErrCorruptData, raw)
	}
	return v, nil
}
