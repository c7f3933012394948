// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
)

// FlushEvery is the number of lines after which the buffer is flushed, so a
// downstream reader sees peptides while proteins are still being written.
const FlushEvery = 256

// Start spins up a goroutine that writes each value received on the
// returned channel as one JSON line, after passing it through conv.
// The error channel yields exactly one value once the input is closed
// (or the first write failed). Errors recognized by isBroken are dropped.
func Start[T any](out io.Writer, bufSize int, conv func(T) any, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		fail := func(err error) {
			if isBroken != nil && isBroken(err) {
				err = nil
			}
			done <- err
			for range in {
			}
		}

		n := 0
		for v := range in {
			if err := enc.Encode(conv(v)); err != nil {
				fail(err)
				return
			}
			if n++; n%FlushEvery == 0 {
				if err := bw.Flush(); err != nil {
					fail(err)
					return
				}
			}
		}
		if err := bw.Flush(); err != nil && (isBroken == nil || !isBroken(err)) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}
