package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Tonecast/internal/wavio"
	"Tonecast/pkg/modem"
)

type result struct {
	path string
	text string
	err  error
}

func startWatcher(t *testing.T, dir string, decode DecodeFunc) <-chan result {
	t.Helper()
	results := make(chan result, 16)
	w, err := New(dir, decode, func(path, text string, err error) {
		results <- result{path, text, err}
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	return results
}

func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func next(t *testing.T, results <-chan result) result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no recording handled")
		return result{}
	}
}

func TestWatcherDecodesRecording(t *testing.T) {
	cfg := modem.DefaultConfig()
	cfg.ChannelCount = 16
	cfg.RepeatCount = 2

	mod, err := modem.NewModulator(cfg)
	require.NoError(t, err)
	demod, err := modem.NewDemodulator(cfg)
	require.NoError(t, err)

	pcm, err := mod.ModulatePCM("HI")
	require.NoError(t, err)

	dir := t.TempDir()
	results := startWatcher(t, dir, func(path string) (string, error) {
		samples, _, err := wavio.ReadFile(path)
		if err != nil {
			return "", err
		}
		return demod.Demodulate(samples)
	})

	path := filepath.Join(dir, "capture.wav")
	require.NoError(t, wavio.WriteFile(path, cfg.SampleRate, pcm))

	r := next(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, path, r.path)
	assert.Equal(t, "HI", r.text)
}

func TestWatcherDebouncesAndFilters(t *testing.T) {
	dir := t.TempDir()
	results := startWatcher(t, dir, readText)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	path := filepath.Join(dir, "b.WAV")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))

	r := next(t, results)
	require.NoError(t, r.err)
	assert.Equal(t, path, r.path)
	assert.Equal(t, "second", r.text)

	select {
	case extra := <-results:
		t.Fatalf("unexpected extra result for %s", extra.path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	results := startWatcher(t, dir, func(path string) (string, error) {
		_, _, err := wavio.ReadFile(path)
		return "", err
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.wav"), []byte("not audio"), 0o644))
	r := next(t, results)
	assert.ErrorIs(t, r.err, wavio.ErrNotWAV)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "gone"), readText, func(string, string, error) {})
	assert.Error(t, err)
}
