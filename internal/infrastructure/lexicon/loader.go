package lexicon

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Set is the versioned indicator asset. It is loaded once at startup and never
// mutated afterwards.
type Set struct {
	Version  string   `yaml:"version"`
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Neutral  []string `yaml:"neutral"`
}

//go:embed lexicon.yaml
var defaultAsset []byte

// Load reads the indicator set from path, or the embedded default asset when
// path is empty.
func Load(path string) (Set, error) {
	raw := defaultAsset
	if path != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return Set{}, fmt.Errorf("read lexicon asset: %w", err)
		}
		raw = fileRaw
	}

	var set Set
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return Set{}, fmt.Errorf("parse lexicon asset: %w", err)
	}
	if len(set.Positive) == 0 || len(set.Negative) == 0 || len(set.Neutral) == 0 {
		return Set{}, fmt.Errorf("lexicon asset %q: all three indicator sets must be non-empty", set.Version)
	}
	return set, nil
}
