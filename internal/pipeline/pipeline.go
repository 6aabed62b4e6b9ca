package pipeline

// Package pipeline runs the strict linear pipeline:
// registry → index → orthogroup parse → filter → export.
// Any stage error aborts the run; nothing is written until the filter
// has fully succeeded, so there is no partial-output mode.

import (
	"github.com/charmbracelet/log"

	"orthoconserve/internal/config"
	"orthoconserve/internal/export"
	"orthoconserve/internal/filter"
	"orthoconserve/internal/index"
	"orthoconserve/internal/orthogroup"
	"orthoconserve/internal/species"
)

// Result summarizes a completed run.
type Result struct {
	TotalSpecies     int
	Threshold        int
	TotalOrthogroups int
	Retained         int
	Proteins         int
	Paths            export.Paths
}

// Run executes the pipeline described by cfg. With dryRun set, the full
// parse and filter happen but no output files are written.
func Run(cfg *config.Config, logger *log.Logger, dryRun bool) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, err := species.NewRegistry(cfg.RegistryEntries())
	if err != nil {
		return nil, err
	}

	sources := cfg.Sources()
	logger.Info("building protein index", "species", len(sources))
	idx, err := index.Build(reg, sources)
	if err != nil {
		return nil, err
	}
	logger.Info("protein index built", "proteins", idx.Len(), "species", idx.NumSpecies())

	groups, err := orthogroup.ParseFile(cfg.OrthogroupsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed orthogroups", "path", cfg.OrthogroupsFile, "orthogroups", len(groups))

	kept, stats, err := filter.Apply(groups, idx, cfg.MinFraction)
	if err != nil {
		return nil, err
	}
	logger.Info("conservation filter applied",
		"total_species", stats.TotalSpecies,
		"threshold", stats.Threshold,
		"retained", len(kept),
		"orthogroups", len(groups))

	res := &Result{
		TotalSpecies:     stats.TotalSpecies,
		Threshold:        stats.Threshold,
		TotalOrthogroups: len(groups),
		Retained:         len(kept),
	}
	for _, c := range kept {
		res.Proteins += len(c.Group.Members)
	}

	if dryRun {
		logger.Info("dry-run: skipping export", "would_export_proteins", res.Proteins)
		return res, nil
	}

	paths, err := export.Write(cfg.OutputDir, kept, idx)
	if err != nil {
		return nil, err
	}
	res.Paths = paths
	logger.Info("wrote output files", "report", paths.Report, "fasta", paths.Fasta, "summary", paths.Summary)
	return res, nil
}
