package modem

import "math"

// FullScale16 is the positive full scale of signed 16-bit PCM.
const FullScale16 = math.MaxInt16

// Convert []float64 to []int16, clipping to [-1, 1]
func Float64ToInt16(input []float64) []int16 {
	output := make([]int16, len(input))
	for i, v := range input {
		output[i] = int16(math.Max(math.Min(v, 1), -1) * FullScale16)
	}
	return output
}

// Convert []int16 to []float64
func Int16ToFloat64(input []int16) []float64 {
	output := make([]float64, len(input))
	for i, v := range input {
		output[i] = float64(v) / FullScale16
	}
	return output
}
