// Package config holds the run parameters and loads them from a YAML
// parameter file. Command-line flags are applied on top by internal/cli.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Params are the tunables of one indexing run. The yaml names are the keys
// accepted in a --config file.
type Params struct {
	// Matching
	AAAMax    int  `yaml:"aaa_max" validate:"gte=0,lte=10"`
	MMMax     int  `yaml:"mm_max" validate:"gte=0,lte=10"`
	MaxSpawns int  `yaml:"max_spawns" validate:"gte=0"`
	Prefilter bool `yaml:"prefilter"`

	// Database preparation
	DecoyString         string `yaml:"decoy_string"`
	DecoyStringPosition string `yaml:"decoy_string_position" validate:"oneof=prefix suffix"`
	MissingDecoyAction  string `yaml:"missing_decoy_action" validate:"oneof=error warn silent"`
	ILEquivalent        bool   `yaml:"il_equivalent"`

	// Mapping policy
	AllowUnmatched           bool `yaml:"allow_unmatched"`
	KeepUnreferencedProteins bool `yaml:"keep_unreferenced_proteins"`
	WriteProteinDescription  bool `yaml:"write_protein_description"`

	// Performance
	Threads   int `yaml:"threads" validate:"gte=0"`
	ChunkSize int `yaml:"chunk_size" validate:"gte=0"`
	DedupeCap int `yaml:"dedupe_cap" validate:"gte=0"`

	// Output
	Output       string `yaml:"output" validate:"oneof=text json jsonl pretty"`
	Sort         bool   `yaml:"sort"`
	Header       bool   `yaml:"header"`
	SummaryFile  string `yaml:"summary_file"`
	ProteinsFile string `yaml:"proteins_file"`
	MetricsFile  string `yaml:"metrics_file"`
	LogLevel     string `yaml:"log_level" validate:"oneof=debug info warn warning error"`
}

// Defaults returns the parameters used when neither a file nor a flag sets
// a value.
func Defaults() Params {
	return Params{
		AAAMax:              3,
		MMMax:               0,
		MaxSpawns:           1 << 16,
		Prefilter:           true,
		DecoyString:         "DECOY_",
		DecoyStringPosition: "prefix",
		MissingDecoyAction:  "warn",
		Output:              "text",
		Header:              true,
		LogLevel:            "info",
	}
}

var validate = validator.New()

// Validate checks every field constraint and reports all violations at once.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %v fails %q", yamlName(fe.StructField()), fe.Value(), fe.ActualTag()+paramSuffix(fe.Param())))
	}
	return fmt.Errorf("invalid parameters: %s", strings.Join(msgs, "; "))
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// Decode overlays the YAML document in r onto p. Unknown keys are errors so
// that typos do not silently fall back to defaults.
func Decode(r io.Reader, p *Params) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto p.
func LoadFile(path string, p *Params) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Decode(bytes.NewReader(data), p); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Marshal renders p as a YAML parameter file.
func (p Params) Marshal() ([]byte, error) { return yaml.Marshal(p) }
