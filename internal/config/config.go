package config

import (
	"encoding/json"
	"fmt"
	"os"

	"orthoconserve/internal/index"
	"orthoconserve/internal/species"
)

// SpeciesConfig declares one species: its display name, the accession
// prefix its protein IDs carry, and the FASTA corpus to index.
type SpeciesConfig struct {
	Name     string `json:"name"`
	IDPrefix string `json:"id_prefix"`
	Fasta    string `json:"fasta"`
}

type Config struct {
	OrthogroupsFile string          `json:"orthogroups_file"`
	OutputDir       string          `json:"output_dir"`
	MinFraction     float64         `json:"min_fraction"`
	HistoryDB       string          `json:"history_db"`
	LogFile         string          `json:"log_file"`
	LogLevel        string          `json:"log_level"`
	Species         []SpeciesConfig `json:"species"`
}

// DefaultConfig carries the reference cryptophyte dataset the pipeline
// was first run on.
func DefaultConfig() *Config {
	return &Config{
		OrthogroupsFile: "input/Orthogroups.txt",
		OutputDir:       "output",
		MinFraction:     0.5,
		Species: []SpeciesConfig{
			{Name: "Guillardia_theta", IDPrefix: "GCF_000002975", Fasta: "input/GCF_000002975.1.faa"},
			{Name: "Hemiselmis_andersenii", IDPrefix: "GCF_000018645", Fasta: "input/GCF_000018645.1.faa"},
			{Name: "Cryptomonas_paramecium", IDPrefix: "GCF_000194455", Fasta: "input/GCF_000194455.1.faa"},
			{Name: "Guillardia_theta_CCMP2712", IDPrefix: "GCF_000315625", Fasta: "input/GCF_000315625.1.faa"},
		},
	}
}

// LoadConfig loads a JSON config from the given path. If path is empty,
// looks for ./config.json; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		// not fatal: return defaults
		return DefaultConfig(), nil
	}
	defer f.Close()
	c := DefaultConfig()
	dec := json.NewDecoder(f)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the fields the pipeline depends on.
func (c *Config) Validate() error {
	if c.OrthogroupsFile == "" {
		return fmt.Errorf("config: orthogroups_file is required")
	}
	if c.MinFraction <= 0 || c.MinFraction > 1 {
		return fmt.Errorf("config: min_fraction must be in (0, 1], got %v", c.MinFraction)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("config: at least one species is required")
	}
	for _, s := range c.Species {
		if s.Fasta == "" {
			return fmt.Errorf("config: species %q has no fasta path", s.Name)
		}
	}
	return nil
}

// RegistryEntries converts the species table for the registry.
func (c *Config) RegistryEntries() []species.Entry {
	entries := make([]species.Entry, len(c.Species))
	for i, s := range c.Species {
		entries[i] = species.Entry{Name: s.Name, IDPrefix: s.IDPrefix}
	}
	return entries
}

// Sources converts the species table for the index builder, in config
// order so runs are reproducible.
func (c *Config) Sources() []index.Source {
	sources := make([]index.Source, len(c.Species))
	for i, s := range c.Species {
		sources[i] = index.Source{Species: s.Name, Path: s.Fasta}
	}
	return sources
}
