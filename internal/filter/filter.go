package filter

// Package filter retains orthogroups whose species coverage meets the
// conservation threshold. Coverage counts distinct species, not member
// proteins: three paralogs from one species cover one species.

import (
	"fmt"
	"math"
	"sort"

	"orthoconserve/internal/index"
	"orthoconserve/internal/orthogroup"
)

// Conserved pairs a retained orthogroup with its distinct species set
// (sorted).
type Conserved struct {
	Group   orthogroup.Orthogroup
	Species []string
}

// Stats carries the derived filter parameters.
type Stats struct {
	TotalSpecies int
	Threshold    int
}

// UnresolvedMemberError reports an orthogroup member absent from the
// protein index: an inconsistency between the membership file and the
// supplied corpora.
type UnresolvedMemberError struct {
	OrthogroupID string
	ProteinID    string
}

func (e *UnresolvedMemberError) Error() string {
	return fmt.Sprintf("orthogroup %s: member protein %q not present in any supplied species corpus",
		e.OrthogroupID, e.ProteinID)
}

// Threshold computes ceil(minFraction * totalSpecies), clamped to at
// least 1. With the default fraction 0.5 and an even species total the
// boundary is exactly half; odd totals round up.
func Threshold(totalSpecies int, minFraction float64) int {
	t := int(math.Ceil(minFraction * float64(totalSpecies)))
	if t < 1 {
		t = 1
	}
	if totalSpecies > 0 && t > totalSpecies {
		t = totalSpecies
	}
	return t
}

// Apply resolves every member of every orthogroup through the index and
// retains the orthogroups whose distinct-species count meets the
// threshold. Source order is preserved.
func Apply(groups []orthogroup.Orthogroup, idx *index.Index, minFraction float64) ([]Conserved, Stats, error) {
	st := Stats{TotalSpecies: idx.NumSpecies()}
	st.Threshold = Threshold(st.TotalSpecies, minFraction)

	var kept []Conserved
	for _, g := range groups {
		covered := make(map[string]bool)
		for _, id := range g.Members {
			rec, ok := idx.Lookup(id)
			if !ok {
				return nil, st, &UnresolvedMemberError{OrthogroupID: g.ID, ProteinID: id}
			}
			covered[rec.Species] = true
		}
		if len(covered) >= st.Threshold {
			names := make([]string, 0, len(covered))
			for s := range covered {
				names = append(names, s)
			}
			sort.Strings(names)
			kept = append(kept, Conserved{Group: g, Species: names})
		}
	}
	return kept, st, nil
}
