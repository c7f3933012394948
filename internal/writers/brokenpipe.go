package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// closedOutput lists the errors a writer sees once the reader of stdout
// has gone away, e.g. `pepidx ... | head`.
var closedOutput = []error{syscall.EPIPE, io.ErrClosedPipe, os.ErrClosed}

// IsBrokenPipe reports whether err (or anything it wraps) means the
// output was closed downstream. Such errors end a run quietly.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range closedOutput {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
