package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIron(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "0.47 mg", want: 0.47},
		{raw: "2.53  mg", want: 2.53},
		{raw: " 12 mg ", want: 12},
		{raw: "0.47mg", want: 0.47},
		{raw: "0.47", want: 0.47},
		{raw: "0", want: 0},
		{raw: "", want: 0},
		{raw: "   ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIron(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIron_CorruptValues(t *testing.T) {
	for _, raw := range []string{"abc", "0.47 g", "0.47 mcg", "mg", "1 2 mg", "NaN", "Inf mg", "0,47 mg"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseIron(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorruptData)
			assert.Contains(t, err.Error(), raw)
		})
	}
}
