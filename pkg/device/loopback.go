package device

import (
	"sync"
	"time"
)

// Loopback is a Device whose output block is fed back as the next input
// block, optionally with additive noise. It can be restarted after Stop.
type Loopback struct {
	BlockRate float64 // blocks per second, 0 means no limit
	Noise     float64 // peak noise amplitude as a fraction of full scale
	Seed      uint64

	mu   sync.Mutex
	done chan struct{} // nil while stopped
	wg   sync.WaitGroup
}

func (d *Loopback) Start(callback func(in, out []int32)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return ErrRunning
	}

	done := make(chan struct{})
	d.done = done
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		buf := [2][]int32{alloci32(BufferSize), alloci32(BufferSize)}
		noise := newNoise(d.Seed, d.Noise)

		swap := true
		update := func() {
			in, out := buf[0], buf[1]
			if !swap {
				in, out = out, in
			}
			callback(in, out)
			noise.addTo(out)
			swap = !swap
		}

		if d.BlockRate == 0 {
			for {
				select {
				case <-done:
					return
				default:
					update()
				}
			}
		}

		ticker := time.NewTicker(time.Duration(float64(time.Second) / d.BlockRate))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()
	return nil
}

// Stop returns once the callback is no longer running. Stopping a device
// that is not running does nothing.
func (d *Loopback) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return nil
	}
	close(d.done)
	d.wg.Wait()
	d.done = nil
	return nil
}

func (d *Loopback) Err() <-chan error { return nil }
