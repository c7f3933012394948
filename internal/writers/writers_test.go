package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"pepidx/internal/output"
	"pepidx/pkg/api"
)

func feed(t *testing.T, format string, sort, header bool, list ...api.PeptideV1) (string, error) {
	t.Helper()
	var b bytes.Buffer
	in, done := StartPeptideWriter(&b, format, sort, header, 1)
	for _, p := range list {
		in <- p
	}
	close(in)
	err := <-done
	return b.String(), err
}

var (
	pA = api.PeptideV1{Peptide: "PEP", Sequence: "PEP", Line: 2, Evidences: []api.EvidenceV1{{Protein: "P1", Start: 0, End: 3, AABefore: "[", AAAfter: "T"}}, TargetDecoy: "target", Unique: true, Proteins: 1}
	pB = api.PeptideV1{Peptide: "AYL", Sequence: "AYL", Line: 1}
)

func TestUnknownFormatErrorDrains(t *testing.T) {
	_, err := feed(t, "nope-format", false, false, pA, pB, pA)
	if err == nil || !strings.Contains(err.Error(), "unknown peptide format") {
		t.Fatalf("want 'unknown peptide format' error, got: %v", err)
	}
}

func TestFormatsRegistered(t *testing.T) {
	got := strings.Join(Formats(), ",")
	if got != "json,jsonl,pretty,text" {
		t.Fatalf("Formats() = %s", got)
	}
}

func TestTextWriterSortedWithHeader(t *testing.T) {
	out, err := feed(t, output.FormatText, true, true, pA, pB)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != output.TSVHeader {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[1], "AYL\tAYL\t\t") || !strings.HasPrefix(lines[2], "PEP\tPEP\tP1\t0\t3\t[\tT\t") {
		t.Fatalf("rows out of order: %q", lines[1:])
	}
}

func TestJSONLWriter(t *testing.T) {
	out, err := feed(t, output.FormatJSONL, false, false, pA, pB)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), out)
	}
	var got api.PeptideV1
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil || got.Evidences[0].Protein != "P1" {
		t.Fatalf("line 0 = %+v (%v)", got, err)
	}
}

func TestJSONWriterSorted(t *testing.T) {
	out, err := feed(t, output.FormatJSON, true, false, pA, pB)
	if err != nil {
		t.Fatal(err)
	}
	var got []api.PeptideV1
	if err := json.Unmarshal([]byte(out), &got); err != nil || len(got) != 2 || got[0].Sequence != "AYL" {
		t.Fatalf("json = %+v (%v)", got, err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(syscall.EPIPE) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("pipe errors not recognised")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("other")) {
		t.Fatal("false positive")
	}
}

func TestPrettyWriterSorted(t *testing.T) {
	out, err := feed(t, output.FormatPretty, true, false, pA, pB)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "# AYL  (no match)\n#\n# PEP  P1:0-3  target\n") {
		t.Fatalf("pretty out = %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterFailureDoesNotBlockSender(t *testing.T) {
	in, done := StartPeptideWriter(failingWriter{}, output.FormatText, false, true, 1)
	for i := 0; i < 10000; i++ {
		in <- pA
	}
	close(in)
	if err := <-done; err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v", err)
	}
}
