// Package fileops performs the filesystem side of organizing: safe moves
// into category folders, in-place renames, duplicate detection by content
// hash, and destination tree maintenance. Every operation that creates a
// file picks a non-clobbering path; existing files are never overwritten.
package fileops

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tidy/internal/catalog"
	"tidy/internal/services"
)

// DuplicateFolder is the holding area for quarantined duplicates, created
// under the Unsorted folder on first use.
const DuplicateFolder = "_duplicates"

// HashFile returns the hex SHA256 digest of the file at path, streaming the
// contents so large files do not load into memory.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "hash",
			fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "hash",
			fmt.Sprintf("read %s", path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// UniquePath returns path if nothing exists there, otherwise the first
// variant "stem (N)ext" that is free.
func UniquePath(path string) string {
	if _, err := os.Lstat(path); err != nil {
		return path
	}
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
	}
}

// Move relocates src into destDir, creating the directory if needed and
// suffixing the name if the target is taken. It returns the final path.
// Cross-device moves fall back to a verified copy followed by removal of
// the source.
func Move(src, destDir string) (string, error) {
	return MoveAs(src, destDir, filepath.Base(src))
}

// MoveAs relocates src into destDir under the given name in one operation,
// so a rename combined with a move never leaves the source half renamed
// when the move fails.
func MoveAs(src, destDir, name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return "", services.Wrap(services.ErrValidation, "fileops", "move",
			fmt.Sprintf("name %q contains a path separator", name), nil)
	}
	if _, err := os.Stat(src); err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "move",
			fmt.Sprintf("stat %s", src), err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "move",
			fmt.Sprintf("create %s", destDir), err)
	}
	target := UniquePath(filepath.Join(destDir, name))
	if err := os.Rename(src, target); err != nil {
		if copyErr := copyVerified(src, target); copyErr != nil {
			return "", services.Wrap(services.ErrFileSystem, "fileops", "move",
				fmt.Sprintf("copy %s to %s", src, target), copyErr)
		}
		if rmErr := os.Remove(src); rmErr != nil {
			return "", services.Wrap(services.ErrFileSystem, "fileops", "move",
				fmt.Sprintf("remove %s after copy", src), rmErr)
		}
	}
	return target, nil
}

// RenameInPlace renames the file to newName within its current directory.
// newName must be a bare filename; if it collides with an existing entry
// the usual numeric suffix applies. Renaming to the current name is a no-op
// that returns the original path.
func RenameInPlace(path, newName string) (string, error) {
	if strings.ContainsRune(newName, os.PathSeparator) || strings.ContainsRune(newName, '/') {
		return "", services.Wrap(services.ErrValidation, "fileops", "rename",
			fmt.Sprintf("name %q contains a path separator", newName), nil)
	}
	if newName == filepath.Base(path) {
		return path, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "rename",
			fmt.Sprintf("stat %s", path), err)
	}
	target := UniquePath(filepath.Join(filepath.Dir(path), newName))
	if err := os.Rename(path, target); err != nil {
		return "", services.Wrap(services.ErrFileSystem, "fileops", "rename",
			fmt.Sprintf("rename %s to %s", path, filepath.Base(target)), err)
	}
	return target, nil
}

// EnsureStructure creates the numbered category folders under root so the
// destination tree always reflects the registry, including Unsorted.
func EnsureStructure(root string, registry *catalog.Registry) error {
	for _, cat := range registry.Categories() {
		dir := filepath.Join(root, cat.FolderName())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrFileSystem, "fileops", "structure",
				fmt.Sprintf("create %s", dir), err)
		}
	}
	return nil
}

// ApplyNumbering renames existing NN_Name folders under root whose number
// no longer matches the registry order, then fills in any missing folders.
// It returns the renames performed as "old -> new" pairs.
func ApplyNumbering(root string, registry *catalog.Registry) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil && !os.IsNotExist(err) {
		return nil, services.Wrap(services.ErrFileSystem, "fileops", "numbering",
			fmt.Sprintf("read %s", root), err)
	}

	var renamed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name, ok := splitNumberedFolder(entry.Name())
		if !ok {
			continue
		}
		cat, ok := registry.Lookup(name)
		if !ok || cat.FolderName() == entry.Name() {
			continue
		}
		oldPath := filepath.Join(root, entry.Name())
		newPath := filepath.Join(root, cat.FolderName())
		if _, err := os.Lstat(newPath); err == nil {
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return renamed, services.Wrap(services.ErrFileSystem, "fileops", "numbering",
				fmt.Sprintf("rename %s to %s", entry.Name(), cat.FolderName()), err)
		}
		renamed = append(renamed, entry.Name()+" -> "+cat.FolderName())
	}

	if err := EnsureStructure(root, registry); err != nil {
		return renamed, err
	}
	return renamed, nil
}

// splitNumberedFolder extracts the category name from an NN_Name folder.
func splitNumberedFolder(folder string) (string, bool) {
	if len(folder) < 4 || folder[2] != '_' {
		return "", false
	}
	for _, r := range folder[:2] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return folder[3:], true
}

// FindDuplicate reports whether a file in destDir has identical content to
// src, returning the path of the first match. Subdirectories and entries
// that cannot be read are skipped rather than treated as errors.
func FindDuplicate(src, destDir string) (string, bool, error) {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, services.Wrap(services.ErrFileSystem, "fileops", "duplicate",
			fmt.Sprintf("read %s", destDir), err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", false, services.Wrap(services.ErrFileSystem, "fileops", "duplicate",
			fmt.Sprintf("stat %s", src), err)
	}

	srcHash := ""
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() != srcInfo.Size() {
			continue
		}
		if srcHash == "" {
			srcHash, err = HashFile(src)
			if err != nil {
				return "", false, err
			}
		}
		candidate := filepath.Join(destDir, entry.Name())
		hash, err := HashFile(candidate)
		if err != nil {
			continue
		}
		if hash == srcHash {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// QuarantineDuplicate moves src into the duplicates holding area under the
// Unsorted folder of destRoot and returns the final path.
func QuarantineDuplicate(src, destRoot string) (string, error) {
	dir := filepath.Join(destRoot, catalog.UnsortedFolder(), DuplicateFolder)
	return Move(src, dir)
}

func copyVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	written, err := io.Copy(out, in)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	return nil
}
