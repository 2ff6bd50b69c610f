package modem

import (
	"fmt"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

// FrameLocator finds the sample index where the first data frame of a
// recording begins.
type FrameLocator interface {
	Locate(signal []float64) (int, error)
}

// FixedOffsetLocator assumes the recording starts exactly at a preamble and
// skips it without looking.
type FixedOffsetLocator struct {
	Offset int
}

func (l FixedOffsetLocator) Locate(signal []float64) (int, error) {
	if l.Offset > len(signal) {
		return 0, fmt.Errorf("%w: %d samples, preamble needs %d", ErrShortSignal, len(signal), l.Offset)
	}
	return l.Offset, nil
}

// PreambleLocator cross-correlates the head of a recording with the preamble
// tone and returns the sample right after the earliest full match. When the
// searched span holds several preambles, any whose peak reaches 90% of the
// strongest one counts as full, so a preamble cut by the start of the
// recording is skipped.
type PreambleLocator struct {
	Preamble       []float64
	SearchSamples  int     // how far into the recording a preamble may start, 0 means anywhere
	MinCorrelation float64 // required peak as a fraction of the preamble energy
}

// NewPreambleLocator builds a locator for the preamble cfg transmits. The
// search covers one full cycle gap plus one preamble, which is enough to
// reach the first preamble of a recording started mid-silence. A recording
// started in the middle of the data frames has its next preamble further
// away; set SearchSamples to 0 to search all of it.
func NewPreambleLocator(cfg Config) PreambleLocator {
	return PreambleLocator{
		Preamble:       Tone(cfg.PreambleFreq, cfg.PreambleSamples(), cfg.SampleRate),
		SearchSamples:  cfg.CycleGapSamples() + cfg.PreambleSamples(),
		MinCorrelation: 0.5,
	}
}

func (l PreambleLocator) Locate(signal []float64) (int, error) {
	m := len(l.Preamble)
	if m == 0 {
		return 0, nil
	}
	if len(signal) < m {
		return 0, fmt.Errorf("%w: %d samples, preamble needs %d", ErrShortSignal, len(signal), m)
	}

	lags := len(signal) - m + 1
	if l.SearchSamples > 0 {
		lags = min(lags, l.SearchSamples+1)
	}
	head := signal[:lags+m-1]

	// linear cross-correlation through one circular convolution with the
	// reversed template, both zero padded to the full output length
	size := len(head) + m - 1
	x := make([]complex128, size)
	copy(x, dsputils.ToComplex(head))
	y := make([]complex128, size)
	for i, v := range l.Preamble {
		y[m-1-i] = complex(v, 0)
	}
	corr := fft.Convolve(x, y)

	energy := 0.0
	for _, v := range l.Preamble {
		energy += v * v
	}

	at := func(lag int) float64 { return real(corr[lag+m-1]) }

	best := 0.0
	for lag := 0; lag < lags; lag++ {
		best = max(best, at(lag))
	}
	if best <= 0 || best < l.MinCorrelation*energy {
		return 0, fmt.Errorf("%w: best correlation %.3f of %.3f", ErrNoPreamble, best, energy)
	}

	first := 0
	for at(first) < 0.9*best {
		first++
	}
	// the sidelobes of a tone rise towards the true lag, which lies within
	// one preamble of the first qualifying one
	peak := first
	for lag := first; lag < min(first+m, lags); lag++ {
		if at(lag) > at(peak) {
			peak = lag
		}
	}
	return peak + m, nil
}
