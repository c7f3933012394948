package integration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"pepidx/internal/app"
	"pepidx/internal/appshell"
)

func TestCanceledRunExit130(t *testing.T) {
	var fa strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&fa, ">p%d\n", i)
		fa.WriteString(strings.Repeat("MKPEPTIDEK", 50))
		fa.WriteByte('\n')
	}
	dbPath := write(t, "big.fa", fa.String())
	peps := write(t, "peps.txt", "PEPTIDE\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"-i", peps, "-q", dbPath}, io.Discard, io.Discard)
	if code != appshell.ExitCanceled {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
