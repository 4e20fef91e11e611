package scan_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tidy/internal/scan"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDiscoverOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta.txt")
	writeFile(t, dir, "alpha.pdf")
	writeFile(t, dir, ".hidden")
	writeFile(t, dir, "partial.crdownload")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := scan.Discover(dir, scan.Options{
		SkipHidden:   true,
		SkipPatterns: []string{"*.crdownload"},
	})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "alpha.pdf" || files[1].Name != "beta.txt" {
		t.Fatalf("unexpected order: %q, %q", files[0].Name, files[1].Name)
	}
	if files[0].Extension != "pdf" {
		t.Fatalf("unexpected extension: %q", files[0].Extension)
	}
	if files[0].Stem() != "alpha" {
		t.Fatalf("unexpected stem: %q", files[0].Stem())
	}
}

func TestDiscoverHonorsLimit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, dir, name)
	}

	files, err := scan.Discover(dir, scan.Options{Limit: 2})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(files))
	}
}

func TestDiscoverSkipsRecentFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt")
	writeFile(t, dir, "fresh.txt")

	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	files, err := scan.Discover(dir, scan.Options{SkipRecentHours: 1})
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "old.txt" {
		t.Fatalf("expected only the old file, got %v", files)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	if _, err := scan.Discover(filepath.Join(t.TempDir(), "missing"), scan.Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Report FINAL.PDF")

	desc, err := scan.Describe(path)
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if desc.Extension != "pdf" {
		t.Fatalf("expected lowercased extension, got %q", desc.Extension)
	}
	if desc.Size != 4 {
		t.Fatalf("unexpected size: %d", desc.Size)
	}

	if _, err := scan.Describe(dir); err == nil {
		t.Fatal("expected error for directory")
	}
}
