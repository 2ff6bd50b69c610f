package modem

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Demodulator walks a recorded carousel and recovers the first cycle.
type Demodulator struct {
	cfg     Config
	plan    FrequencyPlan
	frame   FrameDemodulator
	locator FrameLocator
	logger  zerolog.Logger
}

func NewDemodulator(cfg Config, opts ...Option) (*Demodulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	plan, err := NewFrequencyPlan(cfg.ChannelCount, cfg.FreqMin, cfg.FreqMax)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	if o.locator == nil {
		o.locator = FixedOffsetLocator{Offset: cfg.PreambleSamples()}
	}

	return &Demodulator{
		cfg:  cfg,
		plan: plan,
		frame: FrameDemodulator{
			Plan:           plan,
			SampleRate:     cfg.SampleRate,
			DetectionRatio: cfg.DetectionRatio,
		},
		locator: o.locator,
		logger:  o.logger,
	}, nil
}

func (d *Demodulator) Config() Config { return d.cfg }

// DemodulateBits returns the raw (still protected) bits of every active frame
// between the located start and the end of the first cycle.
func (d *Demodulator) DemodulateBits(inputSignal []float64) ([]bool, error) {
	frameSize := d.cfg.FrameSamples()
	gapSize := d.cfg.GapSamples()
	cycleGap := d.cfg.CycleGapSamples()

	start, err := d.locator.Locate(inputSignal)
	if err != nil {
		return nil, err
	}
	if start+frameSize > len(inputSignal) {
		return nil, fmt.Errorf("%w: %d samples after offset %d, a frame needs %d",
			ErrShortSignal, len(inputSignal)-start, start, frameSize)
	}
	d.logger.Debug().Int("start", start).Msg("[Demodulation] first frame located")

	demodulatedBits := make([]bool, 0, len(d.plan))
	lastFrameEnd := -1

	for i := start; i+frameSize <= len(inputSignal); {
		window := inputSignal[i : i+frameSize]

		if Peak(window) > d.cfg.ActivityThreshold {
			bits := d.frame.Demodulate(window)
			demodulatedBits = append(demodulatedBits, bits...)
			d.logger.Debug().
				Int("at", i).
				Str("bits", BitString(bits)).
				Msg("[Demodulation] frame decoded")

			lastFrameEnd = i + frameSize
			i += frameSize + gapSize
		} else {
			// the whole window is silent, so silence reaches at least its end.
			// Validate keeps a single silent frame below the cycle gap.
			if lastFrameEnd >= 0 && i+frameSize-lastFrameEnd >= cycleGap {
				d.logger.Debug().Int("at", i).Msg("[Demodulation] end of cycle")
				break
			}
			i += gapSize
		}

		if len(demodulatedBits) > d.cfg.MaxBits {
			d.logger.Warn().
				Int("bits", len(demodulatedBits)).
				Int("max_bits", d.cfg.MaxBits).
				Msg("[Demodulation] bit cap reached, stopping")
			break
		}
	}

	if len(demodulatedBits) == 0 {
		return nil, ErrNoSignal
	}
	return demodulatedBits, nil
}

// Demodulate recovers text from float samples in [-1, 1]. On ErrShortSignal,
// ErrNoSignal or ErrNoPreamble the returned text is empty.
func (d *Demodulator) Demodulate(inputSignal []float64) (string, error) {
	bits, err := d.DemodulateBits(inputSignal)
	if err != nil {
		return "", err
	}
	text := DecodeBits(bits)
	d.logger.Debug().
		Int("bits", len(bits)).
		Int("chars", len([]rune(text))).
		Msg("[Demodulation] payload decoded")
	return text, nil
}

// DemodulatePCM is Demodulate for signed 16-bit samples.
func (d *Demodulator) DemodulatePCM(inputSignal []int16) (string, error) {
	return d.Demodulate(Int16ToFloat64(inputSignal))
}
