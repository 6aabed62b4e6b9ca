package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"orthoconserve/internal/config"
	"orthoconserve/internal/pipeline"
	"orthoconserve/internal/runlog"

	"github.com/charmbracelet/log"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries that
// inspect the file descriptor (for TTY detection) can work with wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

func main() {
	configFlag := flag.String("config", "", "path to config.json (optional)")
	orthogroupsFlag := flag.String("orthogroups", "", "orthogroup membership file (overrides config)")
	outDirFlag := flag.String("out-dir", "", "output directory (overrides config)")
	minFractionFlag := flag.Float64("min-fraction", 0, "conservation fraction in (0,1] (overrides config)")
	historyFlag := flag.String("history", "", "sqlite run-history database (overrides config)")
	dryRun := flag.Bool("dry-run", false, "parse and filter without writing output files")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("orthoconserve", version)
		return
	}

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// merge CLI flags into config (flags override config when provided)
	if *orthogroupsFlag != "" {
		cfg.OrthogroupsFile = *orthogroupsFlag
	}
	if *outDirFlag != "" {
		cfg.OutputDir = *outDirFlag
	}
	if *minFractionFlag > 0 {
		cfg.MinFraction = *minFractionFlag
	}
	if *historyFlag != "" {
		cfg.HistoryDB = *historyFlag
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	// create logger backed by the timestamping writer and expose Fd so charm.log can detect TTY
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/config (flags override config)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	logger.Debug("loaded config",
		"orthogroups_file", cfg.OrthogroupsFile,
		"output_dir", cfg.OutputDir,
		"min_fraction", cfg.MinFraction,
		"history_db", cfg.HistoryDB,
		"species", len(cfg.Species))
	if cfg.LogFile != "" && logFileHandle == nil {
		logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", cfg.LogFile)
	}
	logger.Info("starting orthoconserve",
		"orthogroups_file", cfg.OrthogroupsFile,
		"output_dir", cfg.OutputDir,
		"species", len(cfg.Species),
		"min_fraction", cfg.MinFraction,
		"dry_run", *dryRun)

	started := time.Now()
	res, err := pipeline.Run(cfg, logger, *dryRun)
	if err != nil {
		logger.Fatal("pipeline aborted", "err", err)
	}
	finished := time.Now()

	logger.Info("run complete",
		"total_species", res.TotalSpecies,
		"threshold", res.Threshold,
		"orthogroups", res.TotalOrthogroups,
		"retained", res.Retained,
		"proteins_exported", res.Proteins,
		"duration_ms", finished.Sub(started).Milliseconds())

	if cfg.HistoryDB != "" && !*dryRun {
		entry := runlog.Entry{
			Started:     started,
			Finished:    finished,
			Species:     res.TotalSpecies,
			Threshold:   res.Threshold,
			Orthogroups: res.TotalOrthogroups,
			Retained:    res.Retained,
			Proteins:    res.Proteins,
			ReportPath:  res.Paths.Report,
			FastaPath:   res.Paths.Fasta,
		}
		if err := runlog.Append(cfg.HistoryDB, entry); err != nil {
			logger.Error("failed to record run history", "path", cfg.HistoryDB, "err", err)
		} else {
			logger.Debug("run recorded", "path", cfg.HistoryDB)
		}
	}
}
