package device

import "sync"

// Recorder appends every input block to its track. With a positive Limit it
// stops after Limit samples and closes Done.
type Recorder struct {
	mu    sync.Mutex
	track []int32
	limit int
	done  chan struct{}
}

func NewRecorder(limit int) *Recorder {
	r := &Recorder{limit: limit, done: make(chan struct{})}
	if limit > 0 {
		r.track = make([]int32, 0, limit)
	}
	return r
}

func (r *Recorder) Update(in, out []int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit <= 0 {
		r.track = append(r.track, in...)
		return
	}
	if len(r.track) >= r.limit {
		return
	}
	r.track = append(r.track, in[:min(len(in), r.limit-len(r.track))]...)
	if len(r.track) == r.limit {
		close(r.done)
	}
}

// Done is closed when the limit is reached; it never closes without one.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

// Track returns a copy of the samples recorded so far.
func (r *Recorder) Track() []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int32(nil), r.track...)
}
