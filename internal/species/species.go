package species

// Package species holds the registry that maps protein accession
// prefixes to species names. The table is built once from configuration
// and never mutated afterwards.

import (
	"fmt"
	"strings"
)

// Entry associates a species name with the accession prefix its protein
// IDs carry (typically the assembly accession the FASTA was named after).
type Entry struct {
	Name     string
	IDPrefix string
}

// Registry resolves protein IDs to species names by prefix match.
type Registry struct {
	entries []Entry
}

// UnknownMappingError reports a protein ID that matches no registered
// species prefix.
type UnknownMappingError struct {
	ProteinID string
}

func (e *UnknownMappingError) Error() string {
	return fmt.Sprintf("protein ID %q matches no registered species prefix", e.ProteinID)
}

// NewRegistry validates the entries and builds a registry. Names and
// prefixes must be non-empty and prefixes must be unique; two species
// sharing a prefix would make ownership ambiguous.
func NewRegistry(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("species registry: no species configured")
	}
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("species registry: entry with empty species name (prefix %q)", e.IDPrefix)
		}
		if e.IDPrefix == "" {
			return nil, fmt.Errorf("species registry: species %q has an empty ID prefix", e.Name)
		}
		if prev, ok := seen[e.IDPrefix]; ok {
			return nil, fmt.Errorf("species registry: prefix %q claimed by both %q and %q", e.IDPrefix, prev, e.Name)
		}
		seen[e.IDPrefix] = e.Name
	}
	r := &Registry{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	return r, nil
}

// Resolve returns the species owning proteinID. When several prefixes
// match, the longest wins so that e.g. "GCF_0001" and "GCF_00012" can
// coexist.
func (r *Registry) Resolve(proteinID string) (string, error) {
	best := -1
	name := ""
	for _, e := range r.entries {
		if strings.HasPrefix(proteinID, e.IDPrefix) && len(e.IDPrefix) > best {
			best = len(e.IDPrefix)
			name = e.Name
		}
	}
	if best < 0 {
		return "", &UnknownMappingError{ProteinID: proteinID}
	}
	return name, nil
}

// Names returns the registered species names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of registered species.
func (r *Registry) Len() int { return len(r.entries) }
