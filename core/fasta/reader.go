// Package fasta streams protein records from FASTA files.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one FASTA entry, or one window of it when chunking.
type Record struct {
	ID          string // accession: header up to the first blank
	Description string // rest of the header line
	Seq         []byte
	Offset      int  // start of Seq within the full record sequence
	Chunked     bool // Seq is a window of a longer record
}

// End returns the offset just past Seq within the full record.
func (r Record) End() int { return r.Offset + len(r.Seq) }

// ChunkID names the window as id:start-end, or just id for a whole record.
func (r Record) ChunkID() string {
	if !r.Chunked {
		return r.ID
	}
	return fmt.Sprintf("%s:%d-%d", r.ID, r.Offset, r.End())
}

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Scan parses FASTA from r and calls emit once per record, or once per
// window when chunkSize > 0. Consecutive windows overlap by overlap bytes so
// that a match no longer than overlap+1 is seen whole in some window.
// Cancellation via ctx is honoured between lines and between windows.
// A non-nil error from emit stops the scan and is returned.
func Scan(ctx context.Context, r io.Reader, chunkSize, overlap int, emit func(Record) error) error {
	if overlap < 0 {
		overlap = 0
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id, desc string
		open     bool
		seq      = make([]byte, 0, 1<<16)
	)

	flush := func() error {
		if !open {
			return nil
		}
		spans := Spans(len(seq), chunkSize, overlap)
		if len(spans) == 1 {
			return emit(Record{ID: id, Description: desc, Seq: bytes.Clone(seq)})
		}
		for _, sp := range spans {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rec := Record{ID: id, Description: desc, Seq: bytes.Clone(seq[sp[0]:sp[1]]), Offset: sp[0], Chunked: true}
			if err := emit(rec); err != nil {
				return err
			}
		}
		return nil
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id, desc = parseHeader(line[1:])
			open = true
			continue
		}
		if line[0] == ';' { // legacy comment line
			continue
		}
		if !open {
			return fmt.Errorf("fasta: sequence data before the first header")
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ScanPath opens path (see Open) and runs Scan over it.
func ScanPath(ctx context.Context, path string, chunkSize, overlap int, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Scan(ctx, rc, chunkSize, overlap, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll returns every whole record of path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := ScanPath(ctx, path, 0, 0, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

// Spans splits [0,n) into windows of chunkSize that overlap by overlap.
// A single [0,n) span is returned when chunking is off or not needed.
func Spans(n, chunkSize, overlap int) [][2]int {
	step := chunkSize - overlap
	if chunkSize <= 0 || chunkSize >= n || step <= 0 {
		return [][2]int{{0, n}}
	}
	var out [][2]int
	for off := 0; ; off += step {
		end := min(off+chunkSize, n)
		out = append(out, [2]int{off, end})
		if end == n {
			return out
		}
	}
}

func parseHeader(hdr []byte) (string, string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
