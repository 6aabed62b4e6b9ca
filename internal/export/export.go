package export

// Package export writes the three run artifacts: the conserved
// orthogroup report, the combined protein FASTA with rewritten headers,
// and a JSON summary consumed by the TUI viewer. All files are fully
// rewritten each run, so identical inputs give byte-identical outputs.

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orthoconserve/internal/fasta"
	"orthoconserve/internal/filter"
	"orthoconserve/internal/index"
)

// Output file names, matching the reference dataset layout.
const (
	ReportName  = "Conserved_Orthogroups.txt"
	FastaName   = "Conserved_Proteins.faa"
	SummaryName = "conserved_summary.json"
)

// Member is one exported (orthogroup, protein) pair.
type Member struct {
	Species   string `json:"species"`
	ProteinID string `json:"protein_id"`
	Header    string `json:"header"`
	Length    int    `json:"length"`
}

// Summary is the per-orthogroup record of the JSON artifact.
type Summary struct {
	OrthogroupID string   `json:"orthogroup_id"`
	MemberCount  int      `json:"member_count"`
	Species      []string `json:"species"`
	Members      []Member `json:"members"`
}

// Paths names the files written by Write.
type Paths struct {
	Report  string
	Fasta   string
	Summary string
}

// Header builds the rewritten FASTA header embedding species and
// orthogroup identity.
func Header(speciesName, proteinID, orthogroupID string) string {
	return fmt.Sprintf("%s_%s_%s", speciesName, proteinID, orthogroupID)
}

// Write emits all artifacts into outDir, creating it if needed.
// Orthogroups appear in their source order, members in theirs.
func Write(outDir string, kept []filter.Conserved, idx *index.Index) (Paths, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Paths{}, err
	}
	paths := Paths{
		Report:  filepath.Join(outDir, ReportName),
		Fasta:   filepath.Join(outDir, FastaName),
		Summary: filepath.Join(outDir, SummaryName),
	}

	summaries := make([]Summary, 0, len(kept))
	for _, c := range kept {
		s := Summary{
			OrthogroupID: c.Group.ID,
			MemberCount:  len(c.Group.Members),
			Species:      c.Species,
			Members:      make([]Member, 0, len(c.Group.Members)),
		}
		for _, id := range c.Group.Members {
			rec, ok := idx.Lookup(id)
			if !ok {
				// the filter resolved every member already
				return Paths{}, fmt.Errorf("orthogroup %s: member %q vanished from index", c.Group.ID, id)
			}
			s.Members = append(s.Members, Member{
				Species:   rec.Species,
				ProteinID: id,
				Header:    Header(rec.Species, id, c.Group.ID),
				Length:    len(rec.Sequence),
			})
		}
		summaries = append(summaries, s)
	}

	if err := writeReport(paths.Report, summaries); err != nil {
		return Paths{}, err
	}
	if err := writeFasta(paths.Fasta, summaries, idx); err != nil {
		return Paths{}, err
	}
	if err := writeSummary(paths.Summary, summaries); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func writeReport(path string, summaries []Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.OrthogroupID, s.MemberCount, strings.Join(s.Species, ","))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFasta(path string, summaries []Summary, idx *index.Index) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fw := fasta.NewWriter(w)
	for _, s := range summaries {
		for _, m := range s.Members {
			rec, _ := idx.Lookup(m.ProteinID)
			if err := fw.Write(m.Header, rec.Sequence); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSummary(path string, summaries []Summary) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadSummary loads a summary JSON written by Write.
func ReadSummary(path string) ([]Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summaries []Summary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return summaries, nil
}
