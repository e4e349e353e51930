// Package overrides loads hand-curated match decisions from a YAML file.
//
// The file looks like:
//
//	confirmed:
//	  Afghani Badder House: Afghani Badder
//	rejected:
//	  - pos: Gelato Cake
//	    production: Gelato Cookies
//	thresholds:
//	  auto: 90
//	  review: 70
//
// The file is only ever read.
package overrides

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/match"
)

// Thresholds overrides the engine's score cut-offs.
type Thresholds struct {
	Auto   int `yaml:"auto"`
	Review int `yaml:"review"`
}

// File is a parsed overrides file.
type File struct {
	Confirmed  map[string]string `yaml:"confirmed"`
	Rejected   []match.Pair      `yaml:"rejected"`
	Thresholds *Thresholds       `yaml:"thresholds,omitempty"`
}

// Load reads path. An empty path yields an empty File.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = path
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes an overrides document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, errors.WrapParse("yaml", "overrides", err)
	}
	for i, p := range f.Rejected {
		if p.POS == "" || p.Production == "" {
			return nil, errors.NewValidationError("rejected", i, "pos and production are both required")
		}
	}
	return &f, nil
}

// Options converts the file into engine options.
func (f *File) Options() []match.Option {
	if f == nil {
		return nil
	}
	opts := []match.Option{
		match.WithConfirmed(f.Confirmed),
		match.WithRejected(f.Rejected...),
	}
	if f.Thresholds != nil {
		opts = append(opts, match.WithThresholds(f.Thresholds.Auto, f.Thresholds.Review))
	}
	return opts
}

// Len is the number of confirmed and rejected entries.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Confirmed) + len(f.Rejected)
}
