// Package manifest reads batches of packages from YAML or JSON documents.
//
// Measurements are kept as decoded, untyped values so a malformed entry is
// refused on its own instead of failing the whole document.
package manifest

import (
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/muliwe/package-sorter/internal/classifier"
)

// ErrEmpty is returned for a manifest with no packages
var ErrEmpty = errors.New("manifest contains no packages")

// Entry is one package in a manifest
type Entry struct {
	ID     string `yaml:"id" json:"id"`
	Width  any    `yaml:"width" json:"width"`
	Height any    `yaml:"height" json:"height"`
	Length any    `yaml:"length" json:"length"`
	Mass   any    `yaml:"mass" json:"mass"`
}

// Manifest is a batch of packages to sort
type Manifest struct {
	Packages []Entry `yaml:"packages" json:"packages"`
}

// Outcome is the classification of one entry. Exactly one of Result and
// Err is set.
type Outcome struct {
	ID     string            `json:"id"`
	Result classifier.Result `json:"result,omitzero"`
	Err    error             `json:"-"`
	Error  string            `json:"error,omitempty"`
}

// Parse decodes a manifest document. JSON documents are accepted since
// JSON is valid YAML.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, errors.Wrap(err, "decoding manifest")
	}
	if len(m.Packages) == 0 {
		return nil, ErrEmpty
	}

	for i := range m.Packages {
		if m.Packages[i].ID == "" {
			m.Packages[i].ID = "#" + strconv.Itoa(i+1)
		}
	}
	return &m, nil
}

// Load reads and decodes the manifest at path
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening manifest %s", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Classify sorts every entry. Invalid entries are reported in their
// Outcome and do not stop the batch.
func (m *Manifest) Classify(c *classifier.Classifier) []Outcome {
	outcomes := make([]Outcome, 0, len(m.Packages))
	for _, e := range m.Packages {
		result, err := c.ClassifyValues(e.Width, e.Height, e.Length, e.Mass)
		o := Outcome{ID: e.ID}
		if err != nil {
			o.Err = err
			o.Error = err.Error()
		} else {
			o.Result = result
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// Failed counts outcomes with an error
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
