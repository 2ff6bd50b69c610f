// Package watch decodes carousel recordings as they land in a directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DefaultDebounce = 200 * time.Millisecond

// DecodeFunc turns a recording into its payload text.
type DecodeFunc func(path string) (string, error)

// HandleFunc receives the outcome of every decode.
type HandleFunc func(path, text string, err error)

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// Watcher waits until a *.wav file has been quiet for the debounce period
// before decoding it, so a recording is handled once per write burst.
type Watcher struct {
	dir      string
	decode   DecodeFunc
	handle   HandleFunc
	debounce time.Duration
	logger   zerolog.Logger

	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

// New starts watching dir. Events are only delivered once Run is called.
func New(dir string, decode DecodeFunc, handle HandleFunc, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		dir:      dir,
		decode:   decode,
		handle:   handle,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.fs = fs
	return w, nil
}

// Run dispatches events until ctx is cancelled, then cancels pending decodes,
// waits for running ones and releases the watch.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	defer w.drain()

	w.logger.Info().Str("dir", w.dir).Msg("[Watch] Watching for recordings")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !isRecording(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("[Watch] Watcher error")
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		w.process(path)
	})
	w.pending[path] = t
}

func (w *Watcher) process(path string) {
	start := time.Now()
	text, err := w.decode(path)
	if err != nil {
		w.logger.Warn().Err(err).Str("file", path).Msg("[Watch] Decode failed")
	} else {
		w.logger.Info().Str("file", path).Int("chars", len(text)).Dur("took", time.Since(start)).Msg("[Watch] Decoded recording")
	}
	w.handle(path, text, err)
}

func (w *Watcher) drain() {
	w.mu.Lock()
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func isRecording(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
