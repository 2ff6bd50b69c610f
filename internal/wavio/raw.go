package wavio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// A dump is a carousel waveform stored as headerless little-endian float64
// samples in [-1, 1], at the sample rate of the modem that produced it.
const dumpSampleSize = 8

var ErrTruncatedDump = errors.New("dump size is not a whole number of float64 samples")

// WriteDump stores samples at filename and returns how many were written.
func WriteDump(filename string, samples []float64) (int, error) {
	file, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("create dump: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return 0, fmt.Errorf("write dump %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("write dump %s: %w", filename, err)
	}
	return len(samples), file.Close()
}

// ReadDump loads a waveform written by WriteDump.
func ReadDump(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dump %s: %w", filename, err)
	}
	if info.Size()%dumpSampleSize != 0 {
		return nil, fmt.Errorf("%s: %w (%d bytes)", filename, ErrTruncatedDump, info.Size())
	}

	samples := make([]float64, info.Size()/dumpSampleSize)
	if err := binary.Read(bufio.NewReader(file), binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("read dump %s: %w", filename, err)
	}
	return samples, nil
}
