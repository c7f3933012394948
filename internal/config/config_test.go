package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	p := Defaults()
	doc := "aaa_max: 1\nmm_max: 2\ndecoy_string: rev_\ndecoy_string_position: suffix\nil_equivalent: true\n"
	require.NoError(t, Decode(strings.NewReader(doc), &p))
	assert.Equal(t, 1, p.AAAMax)
	assert.Equal(t, 2, p.MMMax)
	assert.Equal(t, "rev_", p.DecoyString)
	assert.Equal(t, "suffix", p.DecoyStringPosition)
	assert.True(t, p.ILEquivalent)
	// untouched keys keep their defaults
	assert.Equal(t, "warn", p.MissingDecoyAction)
	assert.True(t, p.Header)
}

func TestDecodeEmptyDocument(t *testing.T) {
	p := Defaults()
	require.NoError(t, Decode(strings.NewReader(""), &p))
	assert.Equal(t, Defaults(), p)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	p := Defaults()
	err := Decode(strings.NewReader("aaa_maxx: 1\n"), &p)
	assert.Error(t, err)
}

func TestValidateReportsYamlNames(t *testing.T) {
	p := Defaults()
	p.AAAMax = 11
	p.Output = "xml"
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aaa_max")
	assert.Contains(t, err.Error(), "output")
}

func TestLoadFileAndMarshal(t *testing.T) {
	want := Defaults()
	want.MMMax = 1
	want.Output = "jsonl"
	b, err := want.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	got := Defaults()
	require.NoError(t, LoadFile(path, &got))
	assert.Equal(t, want, got)

	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), &got))
}
