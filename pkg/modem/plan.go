package modem

import "fmt"

// FrequencyPlan maps channel index to carrier frequency in Hz.
type FrequencyPlan []float64

// NewFrequencyPlan spaces n carriers linearly over [fmin, fmax], both ends
// included. A single channel sits on fmin.
func NewFrequencyPlan(n int, fmin, fmax float64) (FrequencyPlan, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: channel count must be at least 1, got %d", ErrInvalidConfig, n)
	}
	if err := checkBounds(fmin, fmax); err != nil {
		return nil, err
	}

	plan := make(FrequencyPlan, n)
	plan[0] = fmin
	if n == 1 {
		return plan, nil
	}

	step := (fmax - fmin) / float64(n-1)
	for i := 1; i < n-1; i++ {
		plan[i] = fmin + float64(i)*step
	}
	plan[n-1] = fmax
	return plan, nil
}
