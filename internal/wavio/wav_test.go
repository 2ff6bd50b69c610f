package wavio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	const SAMPLE_RATE = 44100

	samples := []int16{0, 1, -1, 32767, -32767, 12345, -20000, 0}
	filename := filepath.Join(t.TempDir(), "carousel.wav")

	require.NoError(t, WriteFile(filename, SAMPLE_RATE, samples))

	got, sampleRate, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, SAMPLE_RATE, sampleRate)
	require.Len(t, got, len(samples))
	for i, v := range samples {
		assert.InDelta(t, float64(v)/32767, got[i], 1e-12, "sample %d", i)
	}
}

func TestWriteFileSize(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "size.wav")
	require.NoError(t, WriteFile(filename, 8000, make([]int16, 100)))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	// 44 byte RIFF header plus two bytes per sample
	assert.Equal(t, int64(44+200), info.Size())
}

func TestReadFileNotWAV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(filename, []byte("this is not audio at all, just text"), 0o644))

	_, _, err := ReadFile(filename)
	assert.ErrorIs(t, err, ErrNotWAV)
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "modulation.f64")
	data := []float64{0, 0.5, -0.25, 1, -1}

	n, err := WriteDump(filename, data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.EqualValues(t, 8*len(data), info.Size())

	got, err := ReadDump(filename)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadDumpTruncated(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cut.f64")
	_, err := WriteDump(filename, []float64{0.5, -0.5})
	require.NoError(t, err)
	require.NoError(t, os.Truncate(filename, 13))

	_, err = ReadDump(filename)
	assert.ErrorIs(t, err, ErrTruncatedDump)

	_, err = ReadDump(filepath.Join(t.TempDir(), "missing.f64"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
