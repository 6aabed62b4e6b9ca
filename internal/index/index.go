package index

// Package index builds the in-memory protein index: one map from
// protein ID to (species, sequence), populated from one FASTA file per
// species. The whole corpus stays resident for the life of the run;
// orthogroups reference proteins by ID only, so this index is the sole
// owner of sequence data.

import (
	"fmt"
	"sort"

	"orthoconserve/internal/fasta"
	"orthoconserve/internal/species"
)

// Source names the FASTA corpus belonging to one species.
type Source struct {
	Species string
	Path    string
}

// Record is what the index stores per protein ID.
type Record struct {
	Species  string
	Sequence string
}

// DuplicateIDError reports a protein ID claimed by two corpora.
// Ambiguous ownership would corrupt the conservation filter, so this is
// fatal rather than a silent overwrite.
type DuplicateIDError struct {
	ProteinID string
	Species   string // species whose corpus re-used the ID
	Existing  string // species already holding the ID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate protein ID %q: already indexed for species %q, claimed again by %q",
		e.ProteinID, e.Existing, e.Species)
}

// Index maps protein IDs to their owning species and sequence.
type Index struct {
	records map[string]Record
	seen    map[string]bool
}

// Build parses every source corpus and indexes its records. Every
// record ID must resolve through the registry to the species of the
// file it came from; an unmapped or misfiled ID aborts the build.
func Build(reg *species.Registry, sources []Source) (*Index, error) {
	idx := &Index{
		records: make(map[string]Record),
		seen:    make(map[string]bool),
	}
	for _, src := range sources {
		recs, err := fasta.ParseFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("read species corpus %s: %w", src.Path, err)
		}
		for _, rec := range recs {
			owner, err := reg.Resolve(rec.ID)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", src.Path, err)
			}
			if owner != src.Species {
				return nil, fmt.Errorf("%s: protein %q resolves to species %q but was read from the %q corpus",
					src.Path, rec.ID, owner, src.Species)
			}
			if prev, ok := idx.records[rec.ID]; ok {
				return nil, &DuplicateIDError{ProteinID: rec.ID, Species: src.Species, Existing: prev.Species}
			}
			idx.records[rec.ID] = Record{Species: src.Species, Sequence: rec.Sequence}
			idx.seen[src.Species] = true
		}
	}
	return idx, nil
}

// Lookup returns the record for proteinID.
func (x *Index) Lookup(proteinID string) (Record, bool) {
	r, ok := x.records[proteinID]
	return r, ok
}

// Len returns the number of indexed proteins.
func (x *Index) Len() int { return len(x.records) }

// Species returns the sorted names of species that contributed at
// least one record.
func (x *Index) Species() []string {
	names := make([]string, 0, len(x.seen))
	for s := range x.seen {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// NumSpecies returns the number of species represented in the index.
func (x *Index) NumSpecies() int { return len(x.seen) }
