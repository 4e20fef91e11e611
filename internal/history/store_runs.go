package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const runColumns = "id, mode, source_dir, destination_dir, started_at, finished_at, processed, moved, renamed, skipped, duplicates, errors"

const actionColumns = "id, run_id, source_path, final_path, category, subcategory, detector, confidence, renamer, status, detail, created_at"

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now().UTC()
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, mode, source_dir, destination_dir, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.SourceDir, run.DestinationDir,
		started.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stamps the completion time and final counters on a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}
	err := s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, moved = ?, renamed = ?, skipped = ?, duplicates = ?, errors = ?
         WHERE id = ?`,
		finished.UTC().Format(time.RFC3339Nano),
		run.Processed, run.Moved, run.Renamed, run.Skipped, run.Duplicates, run.Errors,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordAction appends one file outcome to a run.
func (s *Store) RecordAction(ctx context.Context, action Action) error {
	created := action.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO actions (run_id, source_path, final_path, category, subcategory, detector, confidence, renamer, status, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		action.RunID,
		action.SourcePath,
		nullableString(action.FinalPath),
		action.Category,
		nullableString(action.Subcategory),
		nullableString(action.Detector),
		action.Confidence,
		nullableString(action.Renamer),
		action.Status,
		nullableString(action.Detail),
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

// GetRun loads a single run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("load run: %w", err)
	}
	return run, nil
}

// RecentRuns returns up to limit runs ordered newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// RunActions returns the actions of a run in recorded order.
func (s *Store) RunActions(ctx context.Context, runID string) ([]Action, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+actionColumns+" FROM actions WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, *action)
	}
	return actions, rows.Err()
}

// Clear removes all runs and their actions.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.execWithRetry(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Mode,
		&run.SourceDir,
		&run.DestinationDir,
		&startedRaw,
		&finishedRaw,
		&run.Processed,
		&run.Moved,
		&run.Renamed,
		&run.Skipped,
		&run.Duplicates,
		&run.Errors,
	); err != nil {
		return nil, err
	}
	run.StartedAt = parseTimestamp(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTimestamp(finishedRaw.String)
	}
	return &run, nil
}

func scanAction(scanner interface{ Scan(dest ...any) error }) (*Action, error) {
	var (
		action      Action
		finalPath   sql.NullString
		subcategory sql.NullString
		detector    sql.NullString
		renamer     sql.NullString
		detail      sql.NullString
		createdRaw  string
	)
	if err := scanner.Scan(
		&action.ID,
		&action.RunID,
		&action.SourcePath,
		&finalPath,
		&action.Category,
		&subcategory,
		&detector,
		&action.Confidence,
		&renamer,
		&action.Status,
		&detail,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	action.FinalPath = finalPath.String
	action.Subcategory = subcategory.String
	action.Detector = detector.String
	action.Renamer = renamer.String
	action.Detail = detail.String
	action.CreatedAt = parseTimestamp(createdRaw)
	return &action, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	return time.Time{}
}
