// Package broadcast keeps a carousel recording on disk up to date with a
// changing payload.
package broadcast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"Tonecast/internal/wavio"
	"Tonecast/pkg/modem"
)

type Broadcaster struct {
	Modulator *modem.Modulator
	Source    Source
	Path      string        // destination WAV file
	Interval  time.Duration // time between generations
	Logger    zerolog.Logger
}

// Once renders the current payload to Path. The file is replaced atomically
// so a player never sees a partial recording.
func (b *Broadcaster) Once(ctx context.Context) error {
	text, err := b.Source(ctx)
	if err != nil {
		return fmt.Errorf("fetch payload: %w", err)
	}

	pcm, err := b.Modulator.ModulatePCM(text)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(b.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := b.Path + ".tmp"
	if err := wavio.WriteFile(tmp, b.Modulator.Config().SampleRate, pcm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, b.Path); err != nil {
		os.Remove(tmp)
		return err
	}

	b.Logger.Info().
		Str("file", b.Path).
		Int("chars", len(text)).
		Int("samples", len(pcm)).
		Msg("[Broadcast] Carousel written")
	return nil
}

// Run generates immediately and then every Interval until ctx is cancelled.
// Failed generations are logged and leave the previous file in place.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.Interval <= 0 {
		return fmt.Errorf("broadcast interval must be positive, got %v", b.Interval)
	}

	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		if err := b.Once(ctx); err != nil {
			b.Logger.Error().Err(err).Str("file", b.Path).Msg("[Broadcast] Generation failed")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}
