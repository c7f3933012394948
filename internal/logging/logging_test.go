package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":        log.InfoLevel,
		"info":    log.InfoLevel,
		"DEBUG":   log.DebugLevel,
		"warning": log.WarnLevel,
		" error ": log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesPrefixedKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info", false)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Warn("duplicate accession", "accession", "P1")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, Prefix)
	assert.Contains(t, out, "accession=P1")
}

func TestQuietKeepsErrors(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", true)
	require.NoError(t, err)
	l.Warn("dropped")
	l.Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
