package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// stackCloser closes its closers in order and reports the first error.
type stackCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackCloser) Close() error {
	var err error
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a buffered reader for path, "-" meaning stdin (which is never
// closed). Gzip input is recognised by its magic bytes, on stdin as well, or
// by a .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	var (
		src     io.Reader = os.Stdin
		closers []io.Closer
	)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
		closers = append(closers, fh)
	}
	br := bufio.NewReaderSize(src, 256<<10)
	sig, _ := br.Peek(len(gzipMagic))
	if string(sig) != string(gzipMagic) && !strings.HasSuffix(path, ".gz") {
		return &stackCloser{Reader: br, closers: closers}, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	return &stackCloser{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
}
