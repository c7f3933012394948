package writers

import (
	"bufio"
	"io"

	"pepidx/internal/output"
	"pepidx/internal/pretty"
	"pepidx/pkg/api"
)

func drain(ch <-chan api.PeptideV1) []api.PeptideV1 {
	list := make([]api.PeptideV1, 0, 128)
	for p := range ch {
		list = append(list, p)
	}
	return list
}

func init() {
	// JSON array
	RegisterPeptide(output.FormatJSON, func(w io.Writer, args PeptideArgs) error {
		list := drain(args.In)
		if args.Sort {
			output.SortPeptides(list)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL streaming
	RegisterPeptide(output.FormatJSONL, func(w io.Writer, args PeptideArgs) error {
		pipe, done := StartPeptideJSONLWriter(w, 64)
		if args.Sort {
			list := drain(args.In)
			output.SortPeptides(list)
			for _, p := range list {
				pipe <- p
			}
		} else {
			for p := range args.In {
				pipe <- p
			}
		}
		close(pipe)
		return <-done
	})

	// ASCII alignments, one block per evidence
	RegisterPeptide(output.FormatPretty, func(w io.Writer, args PeptideArgs) error {
		list := drain(args.In)
		if args.Sort {
			output.SortPeptides(list)
		}
		bw := bufio.NewWriter(w)
		for _, p := range list {
			if _, err := bw.WriteString(pretty.RenderPeptide(p, pretty.DefaultOptions)); err != nil {
				return err
			}
		}
		return bw.Flush()
	})

	// TEXT/TSV (stream or buffered+sort)
	RegisterPeptide(output.FormatText, func(w io.Writer, args PeptideArgs) error {
		if args.Sort {
			list := drain(args.In)
			output.SortPeptides(list)
			return output.WriteText(w, list, args.Header)
		}
		return output.StreamText(w, args.In, args.Header)
	})
}

// StartPeptideWriter spins up a writer goroutine for api.PeptideV1 items.
// Close the returned channel when done, then read the error channel.
// The error is delivered only after the channel is closed.
func StartPeptideWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- api.PeptideV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.PeptideV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WritePeptides(format, out, PeptideArgs{Sort: sort, Header: header, In: in})
		// a writer that failed early stops reading; keep senders unblocked
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
