package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	if cfg.Engine.MaxEditDistance != 2 {
		t.Fatalf("MaxEditDistance = %d, want 2", cfg.Engine.MaxEditDistance)
	}
	if cfg.Engine.PrefixLength != 7 {
		t.Fatalf("PrefixLength = %d, want 7", cfg.Engine.PrefixLength)
	}
	if cfg.Engine.CountThreshold != 1 {
		t.Fatalf("CountThreshold = %d, want 1", cfg.Engine.CountThreshold)
	}
	if cfg.Engine.CompactLevel != 5 {
		t.Fatalf("CompactLevel = %d, want 5", cfg.Engine.CompactLevel)
	}
	if cfg.Engine.DistanceAlgorithm != "damerau-osa" {
		t.Fatalf("DistanceAlgorithm = %q, want damerau-osa", cfg.Engine.DistanceAlgorithm)
	}
	if cfg.Dictionary.Path != "" || cfg.Bigram.Path != "" {
		t.Fatalf("Default() should leave dictionary/bigram paths unset")
	}
}

func TestLoadOverlaysPartialConfigOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[engine]
max_edit_distance = 3

[dictionary]
path = "words.txt"
term_index = 0
count_index = 1
separator = " "
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Engine.MaxEditDistance != 3 {
		t.Fatalf("MaxEditDistance = %d, want 3 (overridden)", cfg.Engine.MaxEditDistance)
	}
	if cfg.Engine.PrefixLength != 7 {
		t.Fatalf("PrefixLength = %d, want 7 (default preserved)", cfg.Engine.PrefixLength)
	}
	if cfg.Dictionary.Path != "words.txt" {
		t.Fatalf("Dictionary.Path = %q, want words.txt", cfg.Dictionary.Path)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.toml"); err == nil {
		t.Fatalf("Load with a missing file should fail")
	}
}

func TestLoadMalformedTOMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("this is not [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load with malformed TOML should fail")
	}
}
