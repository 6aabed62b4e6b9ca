package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.MinFraction != 0.5 || len(c.Species) != 4 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Species[0].Name != "Guillardia_theta" {
		t.Fatalf("unexpected default species table: %+v", c.Species)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "orthogroups_file": "og.txt",
  "output_dir": "out",
  "min_fraction": 0.75,
  "history_db": "runs.db",
  "species": [
    {"name": "SpeciesA", "id_prefix": "SA_", "fasta": "a.faa"},
    {"name": "SpeciesB", "id_prefix": "SB_", "fasta": "b.faa"}
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.OrthogroupsFile != "og.txt" || c.MinFraction != 0.75 || c.HistoryDB != "runs.db" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if len(c.Species) != 2 || c.Species[1].IDPrefix != "SB_" {
		t.Fatalf("species table not replaced: %+v", c.Species)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.MinFraction = 1.5
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for fraction > 1")
	}
	c = DefaultConfig()
	c.OrthogroupsFile = ""
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing orthogroups file")
	}
	c = DefaultConfig()
	c.Species = nil
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for empty species table")
	}
}

func TestRegistryEntriesAndSources(t *testing.T) {
	c := DefaultConfig()
	entries := c.RegistryEntries()
	sources := c.Sources()
	if len(entries) != 4 || len(sources) != 4 {
		t.Fatalf("unexpected lengths: %d entries, %d sources", len(entries), len(sources))
	}
	if entries[2].Name != "Cryptomonas_paramecium" || entries[2].IDPrefix != "GCF_000194455" {
		t.Fatalf("unexpected entry: %+v", entries[2])
	}
	if sources[2].Species != "Cryptomonas_paramecium" || sources[2].Path != "input/GCF_000194455.1.faa" {
		t.Fatalf("unexpected source: %+v", sources[2])
	}
}
