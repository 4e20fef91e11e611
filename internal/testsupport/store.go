package testsupport

import (
	"context"
	"testing"

	"tidy/internal/config"
	"tidy/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginRun starts a run row for tests using the provided store.
func BeginRun(t testing.TB, store *history.Store, run history.Run) history.Run {
	t.Helper()

	if err := store.BeginRun(context.Background(), run); err != nil {
		t.Fatalf("store.BeginRun: %v", err)
	}
	return run
}
