// Package engine orchestrates a run: it discovers files, classifies each
// through the detector chain, applies subcategory and routing rules, derives
// new names, and performs the resulting filesystem operations. Files are
// processed strictly one at a time in discovery order; one file's failure
// never aborts the batch.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tidy/internal/catalog"
	"tidy/internal/config"
	"tidy/internal/detect"
	"tidy/internal/extract"
	"tidy/internal/fileops"
	"tidy/internal/history"
	"tidy/internal/logging"
	"tidy/internal/rename"
	"tidy/internal/scan"
	"tidy/internal/services"
)

const unsortedName = catalog.UnsortedCategory

// Policy selects how uncertain classifications are handled.
type Policy int

const (
	// PolicyUnsorted reroutes uncertain files to the Unsorted folder.
	PolicyUnsorted Policy = iota
	// PolicySkip leaves uncertain files untouched.
	PolicySkip
	// PolicyInteractive asks the Prompter to decide.
	PolicyInteractive
)

// Options control a single run.
type Options struct {
	DryRun     bool
	MoveOnly   bool
	RenameOnly bool
	Limit      int
	Uncertain  Policy
	Prompter   Prompter
	Store      *history.Store
}

// Mode names the run mode for logs and history rows.
func (o Options) Mode() string {
	switch {
	case o.DryRun:
		return "dry-run"
	case o.MoveOnly:
		return "move-only"
	case o.RenameOnly:
		return "rename-only"
	default:
		return "normal"
	}
}

// Report is the result of one run.
type Report struct {
	RunID   string
	Mode    string
	Summary RunSummary
	Actions []Action
}

// Engine drives the pipeline for one or more runs over a configuration.
type Engine struct {
	cfg       *config.Config
	opts      Options
	logger    *slog.Logger
	catalog   *catalog.Catalog
	chain     *detect.Chain
	renamers  *rename.Registry
	extractor *extract.Extractor
	source    rename.Source
	skipTypes map[string]bool
}

// New assembles an engine from validated configuration.
func New(cfg *config.Config, logger *slog.Logger, opts Options) (*Engine, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "new", "configuration required", nil)
	}
	if opts.MoveOnly && opts.RenameOnly {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "new",
			"move-only and rename-only are mutually exclusive", nil)
	}
	if opts.Uncertain == PolicyInteractive && opts.Prompter == nil {
		return nil, services.Wrap(services.ErrConfiguration, "engine", "new",
			"interactive policy requires a prompter", nil)
	}
	cat, err := catalog.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	extractor := extract.New()
	return &Engine{
		cfg:       cfg,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "engine"),
		catalog:   cat,
		chain:     detect.NewDefaultChain(),
		renamers:  rename.NewDefaultRegistry(cfg.Rename.MaxNameLength),
		extractor: extractor,
		source:    rename.NewSource(extractor),
		skipTypes: make(map[string]bool),
	}, nil
}

// Run processes every eligible file in the source directory once.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, e.logger)

	if !e.opts.DryRun && !e.opts.RenameOnly {
		if err := e.cfg.EnsureDirectories(); err != nil {
			return nil, services.Wrap(services.ErrFileSystem, "engine", "prepare", "ensure directories", err)
		}
		if err := fileops.EnsureStructure(e.cfg.Paths.DestinationDir, e.catalog.Registry); err != nil {
			return nil, err
		}
	}

	files, err := scan.Discover(e.cfg.Paths.SourceDir, scan.Options{
		SkipHidden:      e.cfg.Discovery.SkipHidden,
		SkipPatterns:    append(config.DefaultSkipPatterns(), e.cfg.Discovery.SkipPatterns...),
		SkipRecentHours: e.cfg.Discovery.SkipRecentHours,
		Limit:           e.opts.Limit,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, Mode: e.opts.Mode()}
	started := time.Now().UTC()
	recording := e.opts.Store != nil && !e.opts.DryRun
	if recording {
		if err := e.opts.Store.BeginRun(ctx, history.Run{
			ID:             runID,
			Mode:           report.Mode,
			SourceDir:      e.cfg.Paths.SourceDir,
			DestinationDir: e.cfg.Paths.DestinationDir,
			StartedAt:      started,
		}); err != nil {
			logger.Warn("run history unavailable", logging.Error(err))
			recording = false
		}
	}

	logger.Info("run started",
		logging.String("mode", report.Mode),
		logging.Int("files", len(files)),
		logging.String("source", e.cfg.Paths.SourceDir),
	)

	for _, fd := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fileCtx := services.WithFile(ctx, fd.Name)
		action := e.processFile(fileCtx, fd)
		report.Actions = append(report.Actions, action)
		e.logAction(logging.WithContext(fileCtx, e.logger), action)
		if recording {
			if err := e.opts.Store.RecordAction(ctx, historyAction(runID, action)); err != nil {
				logger.Warn("record action failed", logging.Error(err))
			}
		}
	}

	report.Summary = Summarize(report.Actions)
	if recording {
		if err := e.opts.Store.FinishRun(ctx, history.Run{
			ID:         runID,
			FinishedAt: time.Now().UTC(),
			Processed:  report.Summary.Processed,
			Moved:      report.Summary.Moved,
			Renamed:    report.Summary.Renamed,
			Skipped:    report.Summary.Skipped,
			Duplicates: report.Summary.Duplicates,
			Errors:     report.Summary.Errors,
		}); err != nil {
			logger.Warn("finish run failed", logging.Error(err))
		}
	}
	if !e.opts.DryRun {
		if err := e.writeActionLog(report); err != nil {
			logger.Warn("action log not written", logging.Error(err))
		}
	}

	logger.Info("run finished",
		logging.Int("processed", report.Summary.Processed),
		logging.Int("moved", report.Summary.Moved),
		logging.Int("renamed", report.Summary.Renamed),
		logging.Int("skipped", report.Summary.Skipped),
		logging.Int("duplicates", report.Summary.Duplicates),
		logging.Int("errors", report.Summary.Errors),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

func (e *Engine) logAction(logger *slog.Logger, action Action) {
	attrs := []logging.Attr{
		logging.String("status", string(action.Status)),
		logging.String(logging.FieldCategory, action.Category),
		logging.Float64("confidence", action.Confidence),
	}
	if action.Detector != "" {
		attrs = append(attrs, logging.String(logging.FieldDetector, action.Detector))
	}
	if action.Subcategory != "" {
		attrs = append(attrs, logging.String("subcategory", action.Subcategory))
	}
	if action.Renamed() {
		attrs = append(attrs, logging.String("new_name", action.NewName))
	}
	if action.Detail != "" {
		attrs = append(attrs, logging.String("detail", action.Detail))
	}
	if action.Err != nil {
		logger.Error("file failed", logging.Args(append(attrs, logging.Error(action.Err))...)...)
		return
	}
	logger.Info("file processed", logging.Args(attrs...)...)
}

func historyAction(runID string, action Action) history.Action {
	detail := action.Detail
	if action.Err != nil {
		detail = action.Err.Error()
	}
	return history.Action{
		RunID:       runID,
		SourcePath:  action.File.Path,
		FinalPath:   action.FinalPath,
		Category:    action.Category,
		Subcategory: action.Subcategory,
		Detector:    action.Detector,
		Confidence:  action.Confidence,
		Renamer:     action.Renamer,
		Status:      string(action.Status),
		Detail:      detail,
	}
}

type actionRecord struct {
	File        string  `json:"file"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Detector    string  `json:"detector,omitempty"`
	Confidence  float64 `json:"confidence"`
	NewName     string  `json:"new_name,omitempty"`
	FinalPath   string  `json:"final_path,omitempty"`
	Status      string  `json:"status"`
	Detail      string  `json:"detail,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func (e *Engine) writeActionLog(report *Report) error {
	if e.cfg.Paths.LogDir == "" {
		return nil
	}
	if err := os.MkdirAll(e.cfg.Paths.LogDir, 0o755); err != nil {
		return err
	}
	records := make([]actionRecord, 0, len(report.Actions))
	for _, a := range report.Actions {
		rec := actionRecord{
			File:        a.File.Path,
			Category:    a.Category,
			Subcategory: a.Subcategory,
			Detector:    a.Detector,
			Confidence:  a.Confidence,
			FinalPath:   a.FinalPath,
			Status:      string(a.Status),
			Detail:      a.Detail,
		}
		if a.Renamed() {
			rec.NewName = a.NewName
		}
		if a.Err != nil {
			rec.Error = a.Err.Error()
		}
		records = append(records, rec)
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(e.cfg.Paths.LogDir, fmt.Sprintf("run-%s.json", report.RunID))
	return os.WriteFile(path, payload, 0o644)
}
