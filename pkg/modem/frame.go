package modem

// FrameModulator renders one frame: an on-off keyed sine per channel, all
// channels summed and peak normalized.
type FrameModulator struct {
	Plan       FrequencyPlan
	SampleRate int
	Size       int // samples per frame
}

// Modulate synthesizes the frame for bits. bits[i] drives Plan[i]; bits past
// the plan are ignored and missing bits count as zero.
func (m FrameModulator) Modulate(bits []bool) []float64 {
	frame := make([]float64, m.Size)
	for i, bit := range bits[:min(len(bits), len(m.Plan))] {
		if !bit {
			continue
		}
		CarrierConfig{
			Amplitude:  1,
			Freq:       m.Plan[i],
			SampleRate: float64(m.SampleRate),
			Size:       m.Size,
		}.AddTo(frame)
	}
	Normalize(frame)
	return frame
}
