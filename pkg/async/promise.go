// Package async runs functions on goroutines and hands their results back
// over channels.
package async

// Promise runs f on its own goroutine. The channel is buffered so an
// abandoned promise does not leak its goroutine.
func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}

type Result[T any] struct {
	Value T
	Err   error
}

// Try is Promise for functions that can fail.
func Try[T any](f func() (T, error)) <-chan Result[T] {
	return Promise(func() Result[T] {
		v, err := f()
		return Result[T]{v, err}
	})
}
