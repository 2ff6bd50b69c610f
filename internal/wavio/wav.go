// Package wavio moves carousel audio in and out of WAV files.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth      = 16
	pcmFormat     = 1
	monoChannels  = 1
	channelToRead = 0
)

var ErrNotWAV = errors.New("not a valid WAV file")

// Write encodes samples as mono 16-bit PCM.
func Write(w io.WriteSeeker, sampleRate int, samples []int16) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, monoChannels, pcmFormat)

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %v", err)
	}
	return nil
}

func WriteFile(filename string, sampleRate int, samples []int16) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	if err := Write(file, sampleRate, samples); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Read decodes the first channel of an integer PCM WAV into floats in
// [-1, 1], dividing by the positive full scale of the file's bit depth.
func Read(r io.ReadSeeker) (samples []float64, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrNotWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read samples: %v", err)
	}

	depth := int(dec.BitDepth)
	if depth != 16 && depth != 24 && depth != 32 {
		return nil, 0, fmt.Errorf("%w: unsupported bit depth %d", ErrNotWAV, depth)
	}
	fullScale := float64(int64(1)<<(depth-1) - 1)

	channels := max(int(dec.NumChans), 1)
	samples = make([]float64, 0, len(buf.Data)/channels)
	for i := channelToRead; i < len(buf.Data); i += channels {
		samples = append(samples, float64(buf.Data[i])/fullScale)
	}
	return samples, int(dec.SampleRate), nil
}

func ReadFile(filename string) ([]float64, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	return Read(file)
}
