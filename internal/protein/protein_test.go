package protein

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pepidx/core/fasta"
)

func writeFasta(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "db.fasta")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestPrepare(t *testing.T) {
	assert.Equal(t, "MKTAYLK", Prepare([]byte("mkt*AYLK*"), false))
	assert.Equal(t, "MKTAYIK", Prepare([]byte("MKTAYLK"), true))
	assert.Equal(t, "IIIX", Prepare([]byte("JLIX"), true))
	assert.Equal(t, "PEPTIDEK", Prepare([]byte("PEP--TI.DE 1K\r"), false))
}

func TestDecoyRule(t *testing.T) {
	pre := DecoyRule{String: "DECOY_", Position: Prefix}
	assert.True(t, pre.IsDecoy("DECOY_P1"))
	assert.True(t, pre.IsDecoy("decoy_P1"))
	assert.False(t, pre.IsDecoy("P1_DECOY_"))
	assert.False(t, pre.IsDecoy("DEC"))

	suf := DecoyRule{String: "_rev", Position: Suffix}
	assert.True(t, suf.IsDecoy("P1_rev"))
	assert.False(t, suf.IsDecoy("rev_P1"))

	assert.False(t, DecoyRule{}.IsDecoy("anything"))
}

func TestLoad(t *testing.T) {
	var logs bytes.Buffer
	path := writeFasta(t, ">P1 one\nMKTAYL\n>DECOY_P1\nLYATKM\n>P1 again\nmktayl*\n")
	db, err := Load(context.Background(), []string{path}, Options{
		Decoy:  DecoyRule{String: "DECOY_", Position: Prefix},
		Logger: log.New(&logs),
	})
	require.NoError(t, err)
	require.Equal(t, 2, db.Len())
	assert.Equal(t, 1, db.Duplicates)
	assert.Equal(t, 1, db.Decoys())
	assert.Contains(t, logs.String(), "duplicate protein accession")

	p, ok := db.Lookup("P1")
	require.True(t, ok)
	assert.Equal(t, "one", p.Description)
	assert.False(t, p.Decoy)
	d, ok := db.Lookup("DECOY_P1")
	require.True(t, ok)
	assert.True(t, d.Decoy)
	assert.Equal(t, 1, d.Index)
}

func TestConflictingDuplicate(t *testing.T) {
	db := NewDB(Options{})
	require.NoError(t, db.Add(fasta.Record{ID: "P1", Seq: []byte("MKT")}))
	err := db.Add(fasta.Record{ID: "P1", Seq: []byte("MKV")})
	assert.ErrorIs(t, err, ErrConflictingDuplicate)
}

func TestLoadEmpty(t *testing.T) {
	path := writeFasta(t, "")
	_, err := Load(context.Background(), []string{path}, Options{})
	assert.ErrorIs(t, err, ErrEmptyDatabase)
}
