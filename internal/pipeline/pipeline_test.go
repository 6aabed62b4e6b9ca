package pipeline

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"orthoconserve/internal/config"
	"orthoconserve/internal/fasta"
	"orthoconserve/internal/filter"
	"orthoconserve/internal/orthogroup"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testConfig lays out a 4-species corpus and an orthogroup file:
// OG0000001 spans two species (retained at threshold 2), OG0000002 has
// three paralogs from one species (excluded).
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	fixtures := map[string]string{
		"s1.faa": ">S1_p1\nMKTAY\n>S1_p2\nGGWL\n>S1_p3\nAVK\n",
		"s2.faa": ">S2_p1\nAVLPK\n",
		"s3.faa": ">S3_p1\nWYE\n",
		"s4.faa": ">S4_p1\nLLNQ\n",
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	ogPath := filepath.Join(dir, "Orthogroups.txt")
	og := "OG0000001: S1_p1 S2_p1\nOG0000002: S1_p1 S1_p2 S1_p3\n"
	if err := os.WriteFile(ogPath, []byte(og), 0o644); err != nil {
		t.Fatalf("write orthogroups: %v", err)
	}

	return &config.Config{
		OrthogroupsFile: ogPath,
		OutputDir:       filepath.Join(dir, "output"),
		MinFraction:     0.5,
		Species: []config.SpeciesConfig{
			{Name: "S1", IDPrefix: "S1_", Fasta: filepath.Join(dir, "s1.faa")},
			{Name: "S2", IDPrefix: "S2_", Fasta: filepath.Join(dir, "s2.faa")},
			{Name: "S3", IDPrefix: "S3_", Fasta: filepath.Join(dir, "s3.faa")},
			{Name: "S4", IDPrefix: "S4_", Fasta: filepath.Join(dir, "s4.faa")},
		},
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	res, err := Run(cfg, testLogger(), false)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.TotalSpecies != 4 || res.Threshold != 2 {
		t.Fatalf("unexpected stats: %+v", res)
	}
	if res.TotalOrthogroups != 2 || res.Retained != 1 || res.Proteins != 2 {
		t.Fatalf("unexpected counts: %+v", res)
	}

	// round trip: every exported sequence must match its source corpus
	recs, err := fasta.ParseFile(res.Paths.Fasta)
	if err != nil {
		t.Fatalf("parse export fasta: %v", err)
	}
	want := map[string]string{
		"S1_S1_p1_OG0000001": "MKTAY",
		"S2_S2_p1_OG0000001": "AVLPK",
	}
	if len(recs) != len(want) {
		t.Fatalf("expected %d exported records, got %d", len(want), len(recs))
	}
	for _, r := range recs {
		if want[r.ID] != r.Sequence {
			t.Fatalf("sequence changed in export: %q -> %q", r.ID, r.Sequence)
		}
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	res, err := Run(cfg, testLogger(), true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if res.Retained != 1 || res.Proteins != 2 {
		t.Fatalf("dry run should still filter: %+v", res)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("dry run created output dir: %v", err)
	}
}

func TestRunIdempotent(t *testing.T) {
	cfg := testConfig(t)
	res, err := Run(cfg, testLogger(), false)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first := map[string][]byte{}
	for _, p := range []string{res.Paths.Report, res.Paths.Fasta, res.Paths.Summary} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		first[p] = data
	}
	if _, err := Run(cfg, testLogger(), false); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	for p, want := range first {
		got, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(got) != string(want) {
			t.Fatalf("%s differs between identical runs", p)
		}
	}
}

func TestRunAbortsOnMalformedOrthogroupLine(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.OrthogroupsFile, []byte("OG001 ProtA ProtB\n"), 0o644); err != nil {
		t.Fatalf("write orthogroups: %v", err)
	}
	_, err := Run(cfg, testLogger(), false)
	var mle *orthogroup.MalformedLineError
	if !errors.As(err, &mle) {
		t.Fatalf("expected MalformedLineError, got %T: %v", err, err)
	}
	if _, serr := os.Stat(cfg.OutputDir); !os.IsNotExist(serr) {
		t.Fatal("aborted run must not leave partial output")
	}
}

func TestRunAbortsOnUnresolvedMember(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.OrthogroupsFile, []byte("OG0000001: S1_p1 S1_ghost\n"), 0o644); err != nil {
		t.Fatalf("write orthogroups: %v", err)
	}
	_, err := Run(cfg, testLogger(), false)
	var ume *filter.UnresolvedMemberError
	if !errors.As(err, &ume) {
		t.Fatalf("expected UnresolvedMemberError, got %T: %v", err, err)
	}
	if ume.ProteinID != "S1_ghost" || ume.OrthogroupID != "OG0000001" {
		t.Fatalf("error missing context: %+v", ume)
	}
}

func TestRunRejectsBadFraction(t *testing.T) {
	cfg := testConfig(t)
	cfg.MinFraction = 0
	if _, err := Run(cfg, testLogger(), false); err == nil {
		t.Fatal("expected validation error")
	}
}
