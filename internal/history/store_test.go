package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tidy/internal/history"
	"tidy/internal/testsupport"
)

func TestOpenCreatesSchemaAndRecordsRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	run := history.Run{
		ID:             "run-1",
		Mode:           "normal",
		SourceDir:      cfg.Paths.SourceDir,
		DestinationDir: cfg.Paths.DestinationDir,
	}
	if err := store.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}

	fetched, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Mode != "normal" || fetched.Finished() {
		t.Fatalf("unexpected run: %#v", fetched)
	}

	run.Processed = 3
	run.Moved = 2
	run.Errors = 1
	if err := store.FinishRun(ctx, run); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}
	fetched, err = store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun after finish failed: %v", err)
	}
	if !fetched.Finished() || fetched.Processed != 3 || fetched.Moved != 2 || fetched.Errors != 1 {
		t.Fatalf("unexpected finished run: %#v", fetched)
	}
}

func TestRecordActionRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.BeginRun(t, store, history.Run{ID: "run-2", Mode: "dry-run"})

	action := history.Action{
		RunID:       "run-2",
		SourcePath:  "/inbox/invoice.pdf",
		FinalPath:   "/organized/01_Documents/2024-01-01_Invoice.pdf",
		Category:    "Documents",
		Subcategory: "Invoices",
		Detector:    "invoice",
		Confidence:  0.9,
		Renamer:     "invoice",
		Status:      "moved",
	}
	if err := store.RecordAction(ctx, action); err != nil {
		t.Fatalf("RecordAction failed: %v", err)
	}
	if err := store.RecordAction(ctx, history.Action{
		RunID:      "run-2",
		SourcePath: "/inbox/random.bin",
		Category:   "Unsorted",
		Status:     "skipped",
		Detail:     "below confidence threshold",
	}); err != nil {
		t.Fatalf("RecordAction second failed: %v", err)
	}

	actions, err := store.RunActions(ctx, "run-2")
	if err != nil {
		t.Fatalf("RunActions failed: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	first := actions[0]
	if first.Detector != "invoice" || first.Subcategory != "Invoices" || first.Confidence != 0.9 {
		t.Fatalf("unexpected first action: %#v", first)
	}
	second := actions[1]
	if second.Detector != "" || second.FinalPath != "" || second.Detail == "" {
		t.Fatalf("unexpected second action: %#v", second)
	}
	if second.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
}

func TestRecentRunsOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := history.Run{
			ID:        fmt.Sprintf("run-%d", i),
			Mode:      "normal",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.BeginRun(ctx, run); err != nil {
			t.Fatalf("BeginRun %d failed: %v", i, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestClearRemovesRunsAndActions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.BeginRun(t, store, history.Run{ID: "run-3", Mode: "normal"})
	if err := store.RecordAction(ctx, history.Action{
		RunID: "run-3", SourcePath: "/inbox/a.txt", Category: "Documents", Status: "moved",
	}); err != nil {
		t.Fatalf("RecordAction failed: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs after clear, got %d", len(runs))
	}
	actions, err := store.RunActions(ctx, "run-3")
	if err != nil {
		t.Fatalf("RunActions failed: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected cascade delete of actions, got %d", len(actions))
	}
}
