package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	set, err := Load("")
	if err != nil {
		t.Fatalf("load embedded asset: %v", err)
	}
	if set.Version == "" {
		t.Fatalf("embedded asset must carry a version")
	}
	if len(set.Positive) == 0 || len(set.Negative) == 0 || len(set.Neutral) == 0 {
		t.Fatalf("embedded asset must populate all three sets")
	}
}

func TestLoadFromFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	asset := `version: "override"
positive: [excellent]
negative: [poor]
neutral: [okay]
`
	if err := os.WriteFile(path, []byte(asset), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if set.Version != "override" {
		t.Fatalf("expected override version, got %q", set.Version)
	}
	if len(set.Positive) != 1 || set.Positive[0] != "excellent" {
		t.Fatalf("unexpected positive set: %v", set.Positive)
	}
}

func TestLoadRejectsIncompleteAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	asset := `version: "broken"
positive: [excellent]
negative: [poor]
`
	if err := os.WriteFile(path, []byte(asset), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing neutral set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
