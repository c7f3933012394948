// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

const mod = "pepidx/"

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not in PATH")
	}
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	upper := []string{
		"pepidx/internal/appcore", "pepidx/internal/app",
		"pepidx/internal/cli", "pepidx/internal/clibase", "pepidx/cmd/",
	}
	bans := map[string][]string{
		// the matching engine knows nothing about files, proteins or output
		"pepidx/core/aa":     {"pepidx/internal/", "pepidx/core/fasta", "pepidx/core/peptide", "pepidx/pkg/"},
		"pepidx/core/actrie": {"pepidx/internal/", "pepidx/core/fasta", "pepidx/core/peptide", "pepidx/pkg/"},
		"pepidx/core/":       {"pepidx/internal/", "pepidx/cmd/"},
		"pepidx/internal/indexer": append([]string{
			"pepidx/internal/pipeline", "pepidx/internal/mapping",
			"pepidx/internal/writers", "pepidx/internal/output",
		}, upper...),
		"pepidx/internal/pipeline": append([]string{
			"pepidx/internal/mapping", "pepidx/internal/writers", "pepidx/internal/output",
		}, upper...),
		"pepidx/internal/mapping": append([]string{
			"pepidx/internal/pipeline", "pepidx/internal/writers", "pepidx/internal/output",
		}, upper...),
		"pepidx/internal/writers": append([]string{"pepidx/internal/pipeline", "pepidx/internal/mapping"}, upper...),
		"pepidx/internal/output":  append([]string{"pepidx/internal/pipeline"}, upper...),
		"pepidx/internal/pretty":  append([]string{"pepidx/internal/pipeline", "pepidx/internal/writers", "pepidx/internal/output"}, upper...),
		"pepidx/pkg/api":          {"pepidx/internal/", "pepidx/core/", "pepidx/cmd/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != strings.TrimSuffix(prefix, "/") && !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, mod) {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
