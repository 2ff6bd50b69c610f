//go:build windows

package device

import (
	"errors"
	"fmt"

	"github.com/xsjk/go-asio"
)

// ASIOMono exposes one input and one output channel of an ASIO driver.
type ASIOMono struct {
	DeviceName string
	SampleRate float64
	InChannel  int
	OutChannel int

	device  asio.Device
	running bool
	faults  chan error
}

// Start loads and opens the driver and starts streaming. Channel indices are
// checked against the buffers of the first block; a missing channel is
// reported on Err and the output is kept silent.
func (a *ASIOMono) Start(callback func(in, out []int32)) error {
	if a.running {
		return ErrRunning
	}
	if err := a.device.Load(a.DeviceName); err != nil {
		return fmt.Errorf("load ASIO driver %q: %w", a.DeviceName, err)
	}
	if err := a.device.SetSampleRate(a.SampleRate); err != nil {
		a.device.Unload()
		return fmt.Errorf("set sample rate %v on %q: %w", a.SampleRate, a.DeviceName, err)
	}
	if err := a.device.Open(); err != nil {
		a.device.Unload()
		return fmt.Errorf("open ASIO driver %q: %w", a.DeviceName, err)
	}

	a.faults = make(chan error, 1)
	err := a.device.Start(func(in, out [][]int32) {
		i, o, err := monoChannels(in, out, a.InChannel, a.OutChannel)
		if err != nil {
			for _, ch := range out {
				cleari32(ch)
			}
			select {
			case a.faults <- fmt.Errorf("ASIO driver %q: %w", a.DeviceName, err):
			default:
			}
			return
		}
		callback(i, o)
	})
	if err != nil {
		a.device.Close()
		a.device.Unload()
		return fmt.Errorf("start ASIO driver %q: %w", a.DeviceName, err)
	}
	a.running = true
	return nil
}

func (a *ASIOMono) Stop() error {
	if !a.running {
		return nil
	}
	a.running = false
	err := errors.Join(a.device.Stop(), a.device.Close())
	a.device.Unload()
	return err
}

func (a *ASIOMono) Err() <-chan error { return a.faults }
