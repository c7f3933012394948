package appcore

import (
	"io"

	"pepidx/internal/writers"
	"pepidx/pkg/api"
)

// WriterFactory starts the goroutine that serializes peptides.
type WriterFactory interface {
	Start(out io.Writer, bufSize int) (chan<- api.PeptideV1, <-chan error)
}

// PeptideWriterFactory selects a registered writer by format.
type PeptideWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewPeptideWriterFactory(format string, sort, header bool) PeptideWriterFactory {
	return PeptideWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w PeptideWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.PeptideV1, <-chan error) {
	return writers.StartPeptideWriter(out, w.Format, w.Sort, w.Header, bufSize)
}
