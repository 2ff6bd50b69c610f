package modem

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FrameDemodulator decides one bit per channel from a single frame.
type FrameDemodulator struct {
	Plan           FrequencyPlan
	SampleRate     int
	DetectionRatio float64
}

// Magnitudes returns the single-sided amplitude spectrum of a Hann-windowed
// frame, 2/n*|X[k]| for k < n/2.
func Magnitudes(frame []float64) []float64 {
	n := len(frame)
	if n < 2 {
		return nil
	}

	windowed := make([]float64, n)
	for i, w := range window.Hann(n) {
		windowed[i] = frame[i] * w
	}
	spectrum := fft.FFTReal(windowed)

	magnitudes := make([]float64, n/2)
	for k := range magnitudes {
		magnitudes[k] = 2 / float64(n) * cmplx.Abs(spectrum[k])
	}
	return magnitudes
}

// NearestBin returns the index of the FFT bin whose centre frequency is
// closest to freq, with ties going to the lower bin.
func NearestBin(freq float64, n, sampleRate, bins int) int {
	k := int(math.Ceil(freq*float64(n)/float64(sampleRate) - 0.5))
	return max(0, min(k, bins-1))
}

// Demodulate returns exactly len(d.Plan) bits. A channel is 1 when its bin
// exceeds DetectionRatio of the loudest bin in this frame.
func (d FrameDemodulator) Demodulate(frame []float64) []bool {
	bits := make([]bool, len(d.Plan))

	magnitudes := Magnitudes(frame)
	if len(magnitudes) == 0 {
		return bits
	}

	peak := 0.0
	for _, m := range magnitudes {
		peak = max(peak, m)
	}
	threshold := peak * d.DetectionRatio

	for i, freq := range d.Plan {
		k := NearestBin(freq, len(frame), d.SampleRate, len(magnitudes))
		bits[i] = magnitudes[k] > threshold
	}
	return bits
}
