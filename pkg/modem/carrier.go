package modem

import "math"

type CarrierConfig struct {
	Amplitude  float64
	Freq       float64
	Phase      float64
	SampleRate float64
	Size       int
}

func (p CarrierConfig) New() []float64 {
	signal := make([]float64, p.Size)
	p.AddTo(signal)
	return signal
}

// AddTo sums the carrier into the first p.Size samples of signal.
func (p CarrierConfig) AddTo(signal []float64) {
	for i := 0; i < min(p.Size, len(signal)); i++ {
		t := float64(i) / p.SampleRate
		signal[i] += p.Amplitude * math.Sin(2*math.Pi*p.Freq*t+p.Phase)
	}
}

// Tone is a unit-amplitude sine of the given length.
func Tone(freq float64, size int, sampleRate int) []float64 {
	return CarrierConfig{
		Amplitude:  1,
		Freq:       freq,
		SampleRate: float64(sampleRate),
		Size:       size,
	}.New()
}

// Normalize scales signal in place so its peak absolute sample is 1.
// A silent signal is left untouched.
func Normalize(signal []float64) {
	peak := Peak(signal)
	if peak == 0 {
		return
	}
	for i := range signal {
		signal[i] /= peak
	}
}

// Peak returns the largest absolute sample.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, v := range signal {
		peak = max(peak, math.Abs(v))
	}
	return peak
}
