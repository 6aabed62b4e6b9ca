package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"orthoconserve/internal/species"
)

func writeFasta(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func testRegistry(t *testing.T) *species.Registry {
	t.Helper()
	reg, err := species.NewRegistry([]species.Entry{
		{Name: "SpeciesA", IDPrefix: "SA_"},
		{Name: "SpeciesB", IDPrefix: "SB_"},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	reg := testRegistry(t)
	sources := []Source{
		{Species: "SpeciesA", Path: writeFasta(t, dir, "a.faa", ">SA_p1\nMKT\n>SA_p2\nAVL\n")},
		{Species: "SpeciesB", Path: writeFasta(t, dir, "b.faa", ">SB_p1 some desc\nGGW\n")},
	}
	idx, err := Build(reg, sources)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if idx.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", idx.Len())
	}
	rec, ok := idx.Lookup("SB_p1")
	if !ok {
		t.Fatal("SB_p1 not indexed")
	}
	if rec.Species != "SpeciesB" || rec.Sequence != "GGW" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	sp := idx.Species()
	if idx.NumSpecies() != 2 || sp[0] != "SpeciesA" || sp[1] != "SpeciesB" {
		t.Fatalf("unexpected species set: %v", sp)
	}
}

func TestBuildDuplicateID(t *testing.T) {
	dir := t.TempDir()
	reg, err := species.NewRegistry([]species.Entry{
		{Name: "SpeciesA", IDPrefix: "P_"},
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	sources := []Source{
		{Species: "SpeciesA", Path: writeFasta(t, dir, "a.faa", ">P_1\nMKT\n")},
		{Species: "SpeciesA", Path: writeFasta(t, dir, "a2.faa", ">P_1\nAVL\n")},
	}
	_, err = Build(reg, sources)
	if err == nil {
		t.Fatal("expected duplicate ID error")
	}
	var dup *DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateIDError, got %T: %v", err, err)
	}
	if dup.ProteinID != "P_1" || dup.Existing != "SpeciesA" {
		t.Fatalf("error missing context: %+v", dup)
	}
}

func TestBuildUnmappedID(t *testing.T) {
	dir := t.TempDir()
	reg := testRegistry(t)
	sources := []Source{
		{Species: "SpeciesA", Path: writeFasta(t, dir, "a.faa", ">XX_p1\nMKT\n")},
	}
	_, err := Build(reg, sources)
	if err == nil {
		t.Fatal("expected error for unmapped protein ID")
	}
	var ume *species.UnknownMappingError
	if !errors.As(err, &ume) {
		t.Fatalf("expected UnknownMappingError, got %T: %v", err, err)
	}
}

func TestBuildMisfiledID(t *testing.T) {
	dir := t.TempDir()
	reg := testRegistry(t)
	// a SpeciesB accession sitting in the SpeciesA corpus
	sources := []Source{
		{Species: "SpeciesA", Path: writeFasta(t, dir, "a.faa", ">SB_p9\nMKT\n")},
	}
	if _, err := Build(reg, sources); err == nil {
		t.Fatal("expected error for ID filed under the wrong species")
	}
}

func TestBuildMissingFile(t *testing.T) {
	reg := testRegistry(t)
	_, err := Build(reg, []Source{{Species: "SpeciesA", Path: filepath.Join(t.TempDir(), "absent.faa")}})
	if err == nil {
		t.Fatal("expected error for missing corpus file")
	}
}
