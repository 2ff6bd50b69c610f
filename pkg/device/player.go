package device

import "sync"

// Player writes Track into successive output blocks and then silence.
// Done is closed once the whole track has been emitted.
type Player struct {
	mu    sync.Mutex
	track []int32
	idx   int
	done  chan struct{}
}

func NewPlayer(track []int32) *Player {
	return &Player{track: track, done: make(chan struct{})}
}

func (p *Player) Update(in, out []int32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := copy(out, p.track[p.idx:])
	p.idx += n
	cleari32(out[n:])

	if p.idx == len(p.track) {
		select {
		case <-p.done:
		default:
			close(p.done)
		}
	}
}

func (p *Player) Done() <-chan struct{} {
	return p.done
}
