// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pepidx/internal/app"
	"pepidx/internal/appcore"
	"pepidx/pkg/api"
)

const db = `>P1 first protein
MKPEPTIDEKLLSAAR
>P2
GGMLTEAEKPEPTIDEG
>DECOY_P1
RAASLLKEDITPEPKM
`

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestEndToEndText(t *testing.T) {
	peps := write(t, "peps.txt", "# ids\np1\tPEPTIDE\np2\tK.SAAR.-\n")
	fa := write(t, "db.fa", db)

	code, out, errs := run(t, "-i", peps, "--sort", "-q", fa)
	require.Equal(t, appcore.ExitOK, code, errs)

	want := strings.Join([]string{
		"peptide\tsequence\tprotein\tstart\tend\taa_before\taa_after\ttarget_decoy\tunique\tproteins",
		"PEPTIDE\tPEPTIDE\tP1\t2\t9\tK\tK\ttarget\tfalse\t2",
		"PEPTIDE\tPEPTIDE\tP2\t9\t16\tK\tG\ttarget\tfalse\t2",
		"K.SAAR.-\tSAAR\tP1\t12\t16\tL\t]\ttarget\ttrue\t1",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestAmbiguousProteinResidue(t *testing.T) {
	peps := write(t, "peps.txt", "MLTEAEK\n")
	fa := write(t, "db.fa", ">X\nAAMLTEAXKAA\n")

	code, out, errs := run(t, "-i", peps, "-o", "json", "-q", fa)
	require.Equal(t, appcore.ExitOK, code, errs)

	var got []api.PeptideV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Evidences, 1)
	assert.Equal(t, "X", got[0].Evidences[0].Protein)
	assert.Equal(t, 2, got[0].Evidences[0].Start)
	assert.Equal(t, "MLTEAXK", got[0].Evidences[0].Site)

	code, out, errs = run(t, "-i", peps, "-o", "pretty", "-q", fa)
	require.Equal(t, appcore.ExitOK, code, errs)
	assert.Contains(t, out, "#   A.MLTEAXK.A\n#     |||||¦|\n")

	// no ambiguity budget: the X blocks the hit
	code, _, _ = run(t, "-i", peps, "--aaa-max", "0", "-q", fa)
	assert.Equal(t, appcore.ExitUnexpected, code)
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	var fa strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&fa, ">prot%03d\nMKPEPTIDEK%sSAARGGMLTEAEK\n", i, strings.Repeat("A", i%17))
	}
	peps := write(t, "peps.txt", "PEPTIDE\nSAAR\nMLTEAEK\nAAAAA\n")
	dbPath := write(t, "many.fa", fa.String())

	out := func(threads, chunk int) string {
		code, o, errs := run(t, "-i", peps, "--threads", fmt.Sprint(threads),
			"--chunk-size", fmt.Sprint(chunk), "--mm-max", "1",
			"-o", "json", "--sort", "-q", dbPath)
		require.Equal(t, appcore.ExitOK, code, errs)
		return o
	}

	serial := out(1, 0)
	assert.Equal(t, serial, out(4, 0), "parallel output differs from serial")
	assert.Equal(t, serial, out(4, 20), "chunked output differs from whole-protein scan")
}

func TestSideFiles(t *testing.T) {
	peps := write(t, "peps.txt", "PEPTIDE\nEDITPEP\n")
	fa := write(t, "db.fa", db)
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.json")
	prots := filepath.Join(dir, "proteins.tsv")
	metrics := filepath.Join(dir, "metrics.prom")

	code, _, errs := run(t, "-i", peps, "-q", "--summary", summary,
		"--proteins", prots, "--metrics-file", metrics, fa)
	require.Equal(t, appcore.ExitOK, code, errs)

	b, err := os.ReadFile(summary)
	require.NoError(t, err)
	var s api.RunSummaryV1
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, 2, s.Peptides)
	assert.Equal(t, 3, s.Proteins)
	assert.Equal(t, 1, s.DecoyProteins)
	assert.Equal(t, 1, s.Target)
	assert.Equal(t, 1, s.Decoy)
	assert.NotEmpty(t, s.RunID)

	b, err = os.ReadFile(prots)
	require.NoError(t, err)
	assert.Contains(t, string(b), "DECOY_P1\ttrue\t1\t")

	b, err = os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(b), "pepidx_")
}

func TestExitCodes(t *testing.T) {
	fa := write(t, "db.fa", db)
	peps := write(t, "peps.txt", "PEPTIDE\n")
	tests := []struct {
		name string
		argv []string
		want int
	}{
		{"unknown flag", []string{"--nope", "-i", peps, fa}, appcore.ExitUsage},
		{"no database", []string{"-i", peps}, appcore.ExitUsage},
		{"missing peptide file", []string{"-i", filepath.Join(t.TempDir(), "none.txt"), fa}, appcore.ExitIO},
		{"empty database", []string{"-i", peps, write(t, "empty.fa", "")}, appcore.ExitEmptyDB},
		{"no peptides", []string{"-i", write(t, "none.txt", "# nothing\n\n"), fa}, appcore.ExitNoPeptides},
		{"unmatched", []string{"-i", write(t, "un.txt", "WWWWW\n"), fa}, appcore.ExitUnexpected},
		{"unmatched allowed", []string{"-i", write(t, "un2.txt", "WWWWW\nPEPTIDE\n"), "--allow-unmatched", fa}, appcore.ExitOK},
		{"missing decoy error", []string{"-i", peps, "--missing-decoy-action", "error", fa}, appcore.ExitUnexpected},
		{"conflicting duplicate", []string{"-i", peps, write(t, "dup.fa", ">A\nPEPTIDE\n>A\nPEPTIDEK\n")}, appcore.ExitUnexpected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errs := run(t, append(tc.argv, "-q")...)
			assert.Equal(t, tc.want, code, errs)
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "--version")
	assert.Equal(t, appcore.ExitOK, code)
	assert.True(t, strings.HasPrefix(out, "pepidx version "))

	code, out, _ = run(t, "-h")
	assert.Equal(t, appcore.ExitOK, code)
	assert.Contains(t, out, "--peptides")
}
