package device

import "math"

// PCMToInt32 scales [-1, 1] samples to int32 full scale, clipping outliers.
func PCMToInt32(samples []float64) []int32 {
	out := make([]int32, len(samples))
	for i, s := range samples {
		out[i] = clampi32(int64(max(min(s, 1), -1) * math.MaxInt32))
	}
	return out
}

func Int32ToFloat64(samples []int32) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / math.MaxInt32
	}
	return out
}
