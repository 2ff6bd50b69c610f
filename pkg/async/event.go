package async

import (
	"bufio"
	"io"
)

// EnterKey closes the returned channel once r yields a newline or ends.
func EnterKey(r io.Reader) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		bufio.NewReader(r).ReadBytes('\n')
		close(done)
	}()
	return done
}
