package cli

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"pepidx/internal/clibase"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "--peptides", "p.txt", "db.fa")
	if o.PeptideFile != "p.txt" || len(o.Databases) != 1 || o.Databases[0] != "db.fa" {
		t.Errorf("inputs = %+v", o.Common)
	}
	if o.Params.AAAMax != 3 || o.Params.MMMax != 0 || !o.Params.Header || o.Params.Output != "text" {
		t.Errorf("defaults = %+v", o.Params)
	}
}

func TestDatabaseFlagAndPositionals(t *testing.T) {
	o := mustParse(t, "-i", "p.txt", "-d", "a.fa", "--database", "b.fa", "c.fa", "--no-header")
	if len(o.Databases) != 3 || o.Params.Header {
		t.Errorf("bad parse %+v header=%v", o.Databases, o.Params.Header)
	}
}

func TestConfigFileUnderFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("aaa_max: 1\nmm_max: 2\noutput: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o := mustParse(t, "--config", path, "--mm-max", "0", "-i", "p.txt", "db.fa")
	if o.Params.AAAMax != 1 {
		t.Errorf("aaa_max from file = %d, want 1", o.Params.AAAMax)
	}
	if o.Params.MMMax != 0 {
		t.Errorf("--mm-max flag should override file, got %d", o.Params.MMMax)
	}
	if o.Params.Output != "json" {
		t.Errorf("output = %q, want json", o.Params.Output)
	}
	if o.ConfigPath != path {
		t.Errorf("ConfigPath lost on re-parse")
	}
}

func TestErrors(t *testing.T) {
	cases := map[string][]string{
		"no peptides":   {"db.fa"},
		"no database":   {"-i", "p.txt"},
		"two stdins":    {"-i", "-", "-"},
		"bad output":    {"-i", "p.txt", "-o", "xml", "db.fa"},
		"aaa too large": {"-i", "p.txt", "--aaa-max", "11", "db.fa"},
		"bad decoy pos": {"-i", "p.txt", "--decoy-position", "middle", "db.fa"},
		"missing file":  {"-i", "p.txt", "--config", "/nonexistent/params.yaml", "db.fa"},
	}
	for name, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestHelpVersionExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h err = %v", err)
	}
	if o, err := ParseArgs(newFS(), []string{"--version"}); err != nil || !o.Version {
		t.Errorf("--version = %+v, %v", o.Common, err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, clibase.ErrPrintedAndExitOK) {
		t.Errorf("--examples err = %v", err)
	}
}
