package modem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestModem(t testing.TB, cfg Config, opts ...Option) (*Modulator, *Demodulator) {
	t.Helper()
	m, err := NewModulator(cfg)
	require.NoError(t, err)
	d, err := NewDemodulator(cfg, opts...)
	require.NoError(t, err)
	return m, d
}

func TestRoundTripHI(t *testing.T) {
	m, d := newTestModem(t, testConfig(16, 2))

	assert.Equal(t, 2, m.Layout(32).FramesPerCycle)

	pcm, err := m.ModulatePCM("HI")
	require.NoError(t, err)

	bits, err := d.DemodulateBits(Int16ToFloat64(pcm))
	require.NoError(t, err)
	assert.Equal(t, "0011000011000000"+"0011000011000011", BitString(bits))

	text, err := d.DemodulatePCM(pcm)
	require.NoError(t, err)
	assert.Equal(t, "HI", text)
}

func TestRoundTripSingleCycle(t *testing.T) {
	m, d := newTestModem(t, testConfig(32, 1))

	const PAYLOAD = "TYPE:TXT|DATA:hello   radio|END"
	signal, err := m.Modulate(PAYLOAD)
	require.NoError(t, err)

	text, err := d.Demodulate(signal)
	require.NoError(t, err)
	assert.Equal(t, NormalizeText(PAYLOAD), text)
}

func TestRoundTripProperty(t *testing.T) {
	m, d := newTestModem(t, testConfig(16, 2))

	rapid.Check(t, func(t *rapid.T) {
		chars := rapid.SliceOfN(rapid.IntRange(0x21, 0x7e), 1, 6).Draw(t, "chars")
		var sb strings.Builder
		for _, c := range chars {
			sb.WriteRune(rune(c))
		}
		text := sb.String()

		pcm, err := m.ModulatePCM(text)
		require.NoError(t, err)

		got, err := d.DemodulatePCM(pcm)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	})
}

func TestDemodulatorStopsAtCycleEnd(t *testing.T) {
	cfg := testConfig(16, 5)
	m, d := newTestModem(t, cfg)

	signal, err := m.Modulate("OK")
	require.NoError(t, err)

	bits, err := d.DemodulateBits(signal)
	require.NoError(t, err)
	// two frames of one cycle only, later cycles are not appended
	assert.Len(t, bits, 2*cfg.ChannelCount)
}

func TestDemodulatorShortSignal(t *testing.T) {
	cfg := testConfig(16, 1)
	_, d := newTestModem(t, cfg)

	for _, n := range []int{0, 10, cfg.PreambleSamples() + cfg.FrameSamples() - 1} {
		text, err := d.Demodulate(make([]float64, n))
		assert.ErrorIs(t, err, ErrShortSignal, "%d samples", n)
		assert.Empty(t, text)
	}
}

func TestDemodulatorSilence(t *testing.T) {
	_, d := newTestModem(t, testConfig(16, 1))

	text, err := d.Demodulate(make([]float64, 44100))
	assert.ErrorIs(t, err, ErrNoSignal)
	assert.Empty(t, text)
}

func TestDemodulatorBitCap(t *testing.T) {
	cfg := testConfig(16, 1)
	cfg.MaxBits = 40
	m, d := newTestModem(t, cfg)

	signal, err := m.Modulate("a long enough payload")
	require.NoError(t, err)

	bits, err := d.DemodulateBits(signal)
	require.NoError(t, err)
	// the cap is checked after each frame, so it is overshot by less than one frame
	assert.Greater(t, len(bits), cfg.MaxBits)
	assert.LessOrEqual(t, len(bits), cfg.MaxBits+cfg.ChannelCount)
}

func TestPreambleLocator(t *testing.T) {
	cfg := testConfig(16, 2)
	m, d := newTestModem(t, cfg, WithLocator(NewPreambleLocator(cfg)))

	signal, err := m.Modulate("HI")
	require.NoError(t, err)

	for _, lead := range []int{0, 1, 1234, 20000} {
		shifted := append(make([]float64, lead), signal...)

		start, err := NewPreambleLocator(cfg).Locate(shifted)
		require.NoError(t, err)
		assert.Equal(t, lead+cfg.PreambleSamples(), start)

		text, err := d.Demodulate(shifted)
		require.NoError(t, err)
		assert.Equal(t, "HI", text, "lead %d", lead)
	}
}

func TestPreambleLocatorMidDataCapture(t *testing.T) {
	cfg := testConfig(16, 2)
	m, _ := newTestModem(t, cfg)

	signal, err := m.Modulate("HELLO")
	require.NoError(t, err)

	// the capture begins two frames into the first cycle
	cut := cfg.PreambleSamples() + 2*(cfg.FrameSamples()+cfg.GapSamples())
	capture := signal[cut:]

	_, err = NewPreambleLocator(cfg).Locate(capture)
	assert.ErrorIs(t, err, ErrNoPreamble)

	whole := NewPreambleLocator(cfg)
	whole.SearchSamples = 0
	start, err := whole.Locate(capture)
	require.NoError(t, err)
	assert.Equal(t, m.Layout(80).CycleSamples-cut+cfg.PreambleSamples(), start)

	_, d := newTestModem(t, cfg, WithLocator(whole))
	text, err := d.Demodulate(capture)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", text)
}

func TestPreambleLocatorPicksFirstCycle(t *testing.T) {
	cfg := testConfig(16, 3)
	m, _ := newTestModem(t, cfg)

	signal, err := m.Modulate("HI")
	require.NoError(t, err)

	whole := NewPreambleLocator(cfg)
	whole.SearchSamples = 0
	start, err := whole.Locate(signal)
	require.NoError(t, err)
	assert.Equal(t, cfg.PreambleSamples(), start)
}

func TestDemodulatorSilentFrameKeepsCycle(t *testing.T) {
	cfg := testConfig(16, 1)
	m, d := newTestModem(t, cfg)

	// the middle frame carries no tone at all
	bits := make([]bool, 3*cfg.ChannelCount)
	bits[0], bits[2*cfg.ChannelCount] = true, true

	got, err := d.DemodulateBits(m.ModulateBits(bits))
	require.NoError(t, err)
	// the walk goes on past the silent frame and reaches the third one
	require.GreaterOrEqual(t, len(got), 2*cfg.ChannelCount)
	assert.True(t, got[0])
	assert.True(t, got[cfg.ChannelCount])
}

func TestPreambleLocatorNoPreamble(t *testing.T) {
	cfg := testConfig(16, 1)

	_, err := NewPreambleLocator(cfg).Locate(make([]float64, 44100))
	assert.ErrorIs(t, err, ErrNoPreamble)

	_, err = NewPreambleLocator(cfg).Locate(make([]float64, 10))
	assert.ErrorIs(t, err, ErrShortSignal)
}

func TestFixedOffsetLocator(t *testing.T) {
	start, err := FixedOffsetLocator{Offset: 100}.Locate(make([]float64, 200))
	require.NoError(t, err)
	assert.Equal(t, 100, start)

	_, err = FixedOffsetLocator{Offset: 100}.Locate(make([]float64, 50))
	assert.ErrorIs(t, err, ErrShortSignal)
}
