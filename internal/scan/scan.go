// Package scan discovers candidate files in the source directory. The
// scan is shallow and deterministic: entries are visited in name order,
// directories are ignored, and hidden, pattern-matched, recently
// modified, or unreadable files are filtered out.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tidy/internal/services"
)

// FileDescriptor identifies one file picked up by a scan.
type FileDescriptor struct {
	Path      string
	Name      string
	Extension string // lowercase, without the dot
	Size      int64
	Modified  time.Time
}

// Stem returns the file name without its extension.
func (d FileDescriptor) Stem() string {
	if d.Extension == "" {
		return d.Name
	}
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// Options controls which files a scan yields.
type Options struct {
	SkipHidden      bool
	SkipPatterns    []string
	SkipRecentHours int
	Limit           int // 0 means unlimited
}

// Describe builds a descriptor for a single path.
func Describe(path string) (FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileDescriptor{}, services.Wrap(services.ErrFileSystem, "scan", "describe",
			fmt.Sprintf("stat %s", path), err)
	}
	if info.IsDir() {
		return FileDescriptor{}, services.Wrap(services.ErrValidation, "scan", "describe",
			fmt.Sprintf("%s is a directory", path), nil)
	}
	return describe(path, info), nil
}

func describe(path string, info os.FileInfo) FileDescriptor {
	name := filepath.Base(path)
	return FileDescriptor{
		Path:      path,
		Name:      name,
		Extension: strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")),
		Size:      info.Size(),
		Modified:  info.ModTime(),
	}
}

// Discover lists the files in dir that pass every filter, in name
// order. Unreadable entries are skipped rather than failing the scan.
func Discover(dir string, opts Options) ([]FileDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrFileSystem, "scan", "discover",
			fmt.Sprintf("read directory %s", dir), err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	cutoff := time.Time{}
	if opts.SkipRecentHours > 0 {
		cutoff = time.Now().Add(-time.Duration(opts.SkipRecentHours) * time.Hour)
	}

	var out []FileDescriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if matchesAny(name, opts.SkipPatterns) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if !cutoff.IsZero() && info.ModTime().After(cutoff) {
			continue
		}
		out = append(out, describe(filepath.Join(dir, name), info))
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		if ok, err := filepath.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return true
		}
	}
	return false
}
