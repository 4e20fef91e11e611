package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the parent directory and writes content to path.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Seed places named files with contents under dir and returns dir.
func Seed(t testing.TB, dir string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}
