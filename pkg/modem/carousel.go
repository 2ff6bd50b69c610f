package modem

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Modulator turns text into a data carousel: RepeatCount cycles of
// preamble, frames separated by short gaps, and a long cycle gap.
type Modulator struct {
	cfg      Config
	plan     FrequencyPlan
	frame    FrameModulator
	preamble []float64
	logger   zerolog.Logger
}

// Layout describes the shape of a carousel for one payload.
type Layout struct {
	ProtectedBits  int
	FramesPerCycle int
	CycleSamples   int
	TotalSamples   int
}

func NewModulator(cfg Config, opts ...Option) (*Modulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	plan, err := NewFrequencyPlan(cfg.ChannelCount, cfg.FreqMin, cfg.FreqMax)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	return &Modulator{
		cfg:  cfg,
		plan: plan,
		frame: FrameModulator{
			Plan:       plan,
			SampleRate: cfg.SampleRate,
			Size:       cfg.FrameSamples(),
		},
		preamble: Tone(cfg.PreambleFreq, cfg.PreambleSamples(), cfg.SampleRate),
		logger:   o.logger,
	}, nil
}

func (m *Modulator) Config() Config       { return m.cfg }
func (m *Modulator) Plan() FrequencyPlan { return m.plan }

// Layout reports frame count and sample counts for a protected bitstream of
// the given length.
func (m *Modulator) Layout(protectedBits int) Layout {
	n := m.cfg.ChannelCount
	frames := (protectedBits + n - 1) / n
	cycle := m.cfg.PreambleSamples() +
		frames*(m.cfg.FrameSamples()+m.cfg.GapSamples()) +
		m.cfg.CycleGapSamples()
	return Layout{
		ProtectedBits:  protectedBits,
		FramesPerCycle: frames,
		CycleSamples:   cycle,
		TotalSamples:   cycle * m.cfg.RepeatCount,
	}
}

// Modulate synthesizes the full carousel for text as float samples in [-1, 1].
func (m *Modulator) Modulate(text string) ([]float64, error) {
	bits, err := EncodeText(text)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return m.ModulateBits(bits), nil
}

// ModulatePCM is Modulate quantized to signed 16-bit samples.
func (m *Modulator) ModulatePCM(text string) ([]int16, error) {
	signal, err := m.Modulate(text)
	if err != nil {
		return nil, err
	}
	return Float64ToInt16(signal), nil
}

// ModulateBits lays out an already protected bitstream.
func (m *Modulator) ModulateBits(bits []bool) []float64 {
	n := m.cfg.ChannelCount
	layout := m.Layout(len(bits))

	// frames are identical in every cycle, so render them once
	frames := make([][]float64, 0, layout.FramesPerCycle)
	for i := 0; i < len(bits); i += n {
		chunk := make([]bool, n)
		copy(chunk, bits[i:min(i+n, len(bits))])
		frames = append(frames, m.frame.Modulate(chunk))
		m.logger.Debug().
			Int("frame", len(frames)-1).
			Str("bits", BitString(chunk)).
			Msg("[Modulation] frame rendered")
	}

	gap := make([]float64, m.cfg.GapSamples())
	cycleGap := make([]float64, m.cfg.CycleGapSamples())

	modulatedData := make([]float64, 0, layout.TotalSamples)
	for repeat := 0; repeat < m.cfg.RepeatCount; repeat++ {
		modulatedData = append(modulatedData, m.preamble...)
		for _, frame := range frames {
			modulatedData = append(modulatedData, frame...)
			modulatedData = append(modulatedData, gap...)
		}
		modulatedData = append(modulatedData, cycleGap...)
	}

	m.logger.Debug().
		Int("bits", len(bits)).
		Int("frames", layout.FramesPerCycle).
		Int("cycles", m.cfg.RepeatCount).
		Int("samples", len(modulatedData)).
		Msg("[Modulation] carousel assembled")
	return modulatedData
}
