package modem

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid modem config")
	ErrUnencodable   = errors.New("character does not fit in one byte")
	ErrShortSignal   = errors.New("signal too short")
	ErrNoSignal      = errors.New("no signal detected")
	ErrNoPreamble    = errors.New("preamble not found")
)

// Config is shared verbatim by the transmitter and the receiver. There is no
// handshake, so both sides must be built from the same value.
type Config struct {
	SampleRate   int     // samples per second
	ChannelCount int     // number of data carriers, one bit each per frame
	FreqMin      float64 // lowest carrier in Hz
	FreqMax      float64 // highest carrier in Hz

	FrameDuration    time.Duration
	GapDuration      time.Duration // silence after every frame
	CycleGapDuration time.Duration // silence after every cycle
	PreambleDuration time.Duration
	PreambleFreq     float64

	RepeatCount int // number of carousel cycles

	DetectionRatio    float64 // fraction of the frame's peak magnitude a channel must exceed
	ActivityThreshold float64 // peak amplitude below which a window counts as silence
	MaxBits           int     // demodulation stops once this many raw bits are collected
}

func DefaultConfig() Config {
	return Config{
		SampleRate:        44100,
		ChannelCount:      1000,
		FreqMin:           300,
		FreqMax:           15000,
		FrameDuration:     200 * time.Millisecond,
		GapDuration:       50 * time.Millisecond,
		CycleGapDuration:  500 * time.Millisecond,
		PreambleDuration:  100 * time.Millisecond,
		PreambleFreq:      18000,
		RepeatCount:       3,
		DetectionRatio:    0.3,
		ActivityThreshold: 0.01,
		MaxBits:           10000,
	}
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.SampleRate <= 0 {
		return invalid("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.ChannelCount < 1 {
		return invalid("channel count must be at least 1, got %d", c.ChannelCount)
	}
	if err := checkBounds(c.FreqMin, c.FreqMax); err != nil {
		return err
	}

	nyquist := float64(c.SampleRate) / 2
	if c.FreqMax >= nyquist {
		return invalid("max frequency %.1f Hz is not below nyquist %.1f Hz", c.FreqMax, nyquist)
	}
	if c.PreambleFreq <= c.FreqMax || c.PreambleFreq >= nyquist {
		return invalid("preamble frequency %.1f Hz must lie in (%.1f, %.1f) Hz", c.PreambleFreq, c.FreqMax, nyquist)
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"frame duration", c.FrameDuration},
		{"gap duration", c.GapDuration},
		{"cycle gap duration", c.CycleGapDuration},
		{"preamble duration", c.PreambleDuration},
	} {
		if d.value <= 0 {
			return invalid("%s must be positive, got %v", d.name, d.value)
		}
		if c.samples(d.value) < 1 {
			return invalid("%s %v is shorter than one sample", d.name, d.value)
		}
	}
	// The receiver ends a cycle once it has seen CycleGapDuration without an
	// active frame. A single silent frame between two gaps must stay below that.
	if c.CycleGapDuration <= c.FrameDuration+2*c.GapDuration {
		return invalid("cycle gap %v must be longer than one frame plus two gaps (%v)",
			c.CycleGapDuration, c.FrameDuration+2*c.GapDuration)
	}

	if c.RepeatCount < 1 {
		return invalid("repeat count must be at least 1, got %d", c.RepeatCount)
	}
	if !(c.DetectionRatio > 0 && c.DetectionRatio < 1) {
		return invalid("detection ratio must lie in (0, 1), got %v", c.DetectionRatio)
	}
	if !(c.ActivityThreshold >= 0 && c.ActivityThreshold < 1) {
		return invalid("activity threshold must lie in [0, 1), got %v", c.ActivityThreshold)
	}
	if c.MaxBits < 1 {
		return invalid("max bits must be positive, got %d", c.MaxBits)
	}
	return nil
}

func checkBounds(fmin, fmax float64) error {
	if math.IsNaN(fmin) || math.IsNaN(fmax) || math.IsInf(fmin, 0) || math.IsInf(fmax, 0) {
		return fmt.Errorf("%w: frequency bounds must be finite, got [%v, %v]", ErrInvalidConfig, fmin, fmax)
	}
	if fmin < 0 {
		return fmt.Errorf("%w: min frequency must not be negative, got %v", ErrInvalidConfig, fmin)
	}
	if fmin >= fmax {
		return fmt.Errorf("%w: min frequency %v must be below max frequency %v", ErrInvalidConfig, fmin, fmax)
	}
	return nil
}

// samples converts a duration to a sample count with integer arithmetic, so
// 200ms at 44100 Hz is exactly 8820 samples on both ends of the link.
func (c Config) samples(d time.Duration) int {
	return int(int64(c.SampleRate) * int64(d) / int64(time.Second))
}

func (c Config) FrameSamples() int    { return c.samples(c.FrameDuration) }
func (c Config) GapSamples() int      { return c.samples(c.GapDuration) }
func (c Config) CycleGapSamples() int { return c.samples(c.CycleGapDuration) }
func (c Config) PreambleSamples() int { return c.samples(c.PreambleDuration) }
