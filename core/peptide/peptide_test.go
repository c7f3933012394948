package peptide

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		il   bool
		want string
	}{
		{"PEPTIDE", false, "PEPTIDE"},
		{"peptide", false, "PEPTIDE"},
		{"PEPM(Oxidation)TIDE", false, "PEPMTIDE"},
		{"[Acetyl]PEPTIDEK[+8.01]", false, "PEPTIDEK"},
		{"K.PEPTIDE.R", false, "PEPTIDE"},
		{"-.MKTAYL.-", false, "MKTAYL"},
		{"PEP*TIDE", false, "PEPTIDE"},
		{"LEJIL", true, "IEIII"},
		{"LEJIL", false, "LEJIL"},
	}
	for _, c := range cases {
		got, err := Normalize(c.in, c.il)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%q, %v) = %q, want %q", c.in, c.il, got, c.want)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, in := range []string{"PEP1DE", "PEP-TIDE", "(mod)", "*"} {
		if _, err := Normalize(in, false); !errors.Is(err, ErrInvalidSequence) {
			t.Errorf("Normalize(%q) err = %v, want ErrInvalidSequence", in, err)
		}
	}
}

func TestNormalizeErrorNamesRawInput(t *testing.T) {
	_, err := Normalize("[Acetyl]PEP$TIDE", false)
	if !errors.Is(err, ErrInvalidSequence) {
		t.Fatalf("err = %v, want ErrInvalidSequence", err)
	}
	want := ErrInvalidSequence.Error() + `: "[Acetyl]PEP$TIDE" contains '$'`
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestRead(t *testing.T) {
	in := "# header\n\nPEPTIDE\npep2\tK.MKTAYL.R\nPEPTIDE\n"
	peps, err := Read(context.Background(), strings.NewReader(in), false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(peps) != 3 {
		t.Fatalf("got %d peptides, want 3", len(peps))
	}
	if peps[1].ID != "pep2" || peps[1].Seq != "MKTAYL" || peps[1].Line != 4 {
		t.Errorf("peps[1] = %+v", peps[1])
	}
	if u := Unique(peps); len(u) != 2 || u[0] != "PEPTIDE" || u[1] != "MKTAYL" {
		t.Errorf("Unique = %v", u)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(context.Background(), strings.NewReader("# only\n\n"), false); !errors.Is(err, ErrNoPeptides) {
		t.Errorf("empty list err = %v, want ErrNoPeptides", err)
	}
	_, err := Read(context.Background(), strings.NewReader("PEPTIDE\nBAD1\n"), false)
	if !errors.Is(err, ErrInvalidSequence) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("bad line err = %v", err)
	}
}
