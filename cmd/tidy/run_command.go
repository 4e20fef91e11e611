package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tidy/internal/config"
	"tidy/internal/engine"
	"tidy/internal/history"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceFlag    string
		destFlag      string
		dryRun        bool
		moveOnly      bool
		renameOnly    bool
		skipUncertain bool
		interactive   bool
		limit         int
		jsonOut       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Organize the source directory once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if sourceFlag != "" {
				expanded, err := config.ExpandPath(sourceFlag)
				if err != nil {
					return err
				}
				cfg.Paths.SourceDir = expanded
			}
			if destFlag != "" {
				expanded, err := config.ExpandPath(destFlag)
				if err != nil {
					return err
				}
				cfg.Paths.DestinationDir = expanded
			}
			if skipUncertain && interactive {
				return fmt.Errorf("--skip-uncertain and --interactive are mutually exclusive")
			}

			opts := engine.Options{
				DryRun:     dryRun,
				MoveOnly:   moveOnly,
				RenameOnly: renameOnly,
				Limit:      limit,
			}
			switch {
			case skipUncertain:
				opts.Uncertain = engine.PolicySkip
			case interactive:
				if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("--interactive requires a terminal on stdin")
				}
				opts.Uncertain = engine.PolicyInteractive
				opts.Prompter = newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			if !dryRun {
				unlock, err := acquireRunLock(cfg)
				if err != nil {
					return err
				}
				defer unlock()

				if cfg.History.Enabled {
					store, err := history.Open(cfg)
					if err != nil {
						return fmt.Errorf("open history: %w", err)
					}
					defer store.Close()
					opts.Store = store
				}
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			eng, err := engine.New(cfg, logger, opts)
			if err != nil {
				return err
			}
			report, err := eng.Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, runReport(report))
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source", "", "Override the source directory")
	cmd.Flags().StringVar(&destFlag, "dest", "", "Override the destination directory")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Compute every action without touching the filesystem")
	cmd.Flags().BoolVar(&moveOnly, "move-only", false, "Move files without renaming them")
	cmd.Flags().BoolVar(&renameOnly, "rename-only", false, "Rename files in place without moving them")
	cmd.Flags().BoolVar(&skipUncertain, "skip-uncertain", false, "Leave files below the confidence threshold untouched")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask before filing uncertain classifications")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process at most this many files (0 = no limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	return cmd
}

// acquireRunLock takes an advisory lock so two runs never race on the same
// destination tree.
func acquireRunLock(cfg *config.Config) (func(), error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "tidy.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is already in progress (lock held at %s)", lock.Path())
	}
	return func() { _ = lock.Unlock() }, nil
}

type reportJSON struct {
	RunID   string             `json:"run_id"`
	Mode    string             `json:"mode"`
	Summary engine.RunSummary  `json:"summary"`
	Actions []reportActionJSON `json:"actions"`
}

type reportActionJSON struct {
	File        string  `json:"file"`
	Status      string  `json:"status"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Detector    string  `json:"detector,omitempty"`
	Confidence  float64 `json:"confidence"`
	NewName     string  `json:"new_name,omitempty"`
	FinalPath   string  `json:"final_path,omitempty"`
	Detail      string  `json:"detail,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func runReport(report *engine.Report) reportJSON {
	out := reportJSON{
		RunID:   report.RunID,
		Mode:    report.Mode,
		Summary: report.Summary,
		Actions: make([]reportActionJSON, 0, len(report.Actions)),
	}
	for _, a := range report.Actions {
		rec := reportActionJSON{
			File:        a.File.Name,
			Status:      string(a.Status),
			Category:    a.Category,
			Subcategory: a.Subcategory,
			Detector:    a.Detector,
			Confidence:  a.Confidence,
			FinalPath:   a.FinalPath,
			Detail:      a.Detail,
		}
		if a.Renamed() {
			rec.NewName = a.NewName
		}
		if a.Err != nil {
			rec.Error = a.Err.Error()
		}
		out.Actions = append(out.Actions, rec)
	}
	return out
}

func printReport(cmd *cobra.Command, report *engine.Report) {
	out := cmd.OutOrStdout()
	if len(report.Actions) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}

	rows := make([][]string, 0, len(report.Actions))
	for _, a := range report.Actions {
		target := a.Category
		if a.Subcategory != "" {
			target += "/" + a.Subcategory
		}
		name := a.File.Name
		if a.Renamed() {
			name += " -> " + a.NewName
		}
		detail := a.Detail
		if a.Err != nil {
			detail = a.Err.Error()
		}
		rows = append(rows, []string{
			name,
			string(a.Status),
			target,
			fmt.Sprintf("%.2f", a.Confidence),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Status", "Category", "Confidence", "Detail"}, rows, 4))

	s := report.Summary
	fmt.Fprintf(out, "\n%s run %s: %d processed, %d moved, %d renamed, %d skipped, %d duplicates, %d errors\n",
		report.Mode, report.RunID, s.Processed, s.Moved, s.Renamed, s.Skipped, s.Duplicates, s.Errors)
}
