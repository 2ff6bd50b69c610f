// Package device moves int32 PCM blocks between a sound card, or a software
// stand-in for one, and the callbacks that produce and consume them.
package device

import "errors"

// Device drives callback once per block. in holds the samples captured during
// the previous block and out receives the samples to emit next.
//
// Err delivers a failure that happens after Start returned. Devices that
// cannot fail that way return a nil channel.
type Device interface {
	Start(callback func(in, out []int32)) error
	Stop() error
	Err() <-chan error
}

const BufferSize = 512

var (
	ErrRunning   = errors.New("device already running")
	ErrNoChannel = errors.New("no such channel")
)
