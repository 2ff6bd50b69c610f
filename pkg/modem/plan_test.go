package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewFrequencyPlan(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		fmin     float64
		fmax     float64
		expected FrequencyPlan
	}{
		{"single channel", 1, 300, 15000, FrequencyPlan{300}},
		{"two channels", 2, 300, 15000, FrequencyPlan{300, 15000}},
		{"eight channels", 8, 300, 15000, FrequencyPlan{300, 2400, 4500, 6600, 8700, 10800, 12900, 15000}},
		{"sixteen channels", 16, 300, 15000, FrequencyPlan{
			300, 1280, 2260, 3240, 4220, 5200, 6180, 7160,
			8140, 9120, 10100, 11080, 12060, 13040, 14020, 15000,
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewFrequencyPlan(tt.n, tt.fmin, tt.fmax)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.expected, plan, 1e-9)
		})
	}
}

func TestNewFrequencyPlanInvalid(t *testing.T) {
	tests := []struct {
		name string
		n    int
		fmin float64
		fmax float64
	}{
		{"zero channels", 0, 300, 15000},
		{"negative channels", -3, 300, 15000},
		{"inverted bounds", 8, 15000, 300},
		{"equal bounds", 8, 1000, 1000},
		{"negative min", 8, -10, 1000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrequencyPlan(tt.n, tt.fmin, tt.fmax)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestFrequencyPlanProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 2048).Draw(t, "n")
		fmin := rapid.Float64Range(0, 20000).Draw(t, "fmin")
		fmax := fmin + rapid.Float64Range(1, 20000).Draw(t, "span")

		plan, err := NewFrequencyPlan(n, fmin, fmax)
		require.NoError(t, err)

		require.Len(t, plan, n)
		assert.Equal(t, fmin, plan[0])
		if n > 1 {
			assert.Equal(t, fmax, plan[n-1])
		}
		for i := 1; i < n; i++ {
			require.Greaterf(t, plan[i], plan[i-1], "plan not strictly increasing at %d", i)
		}
	})
}
