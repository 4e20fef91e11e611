// Package extract produces bounded content excerpts and structured
// metadata from files: plain-text windows, PDF text and document info,
// archive entry listings, EPUB metadata, and image EXIF timestamps.
// Extraction never fails hard; a malformed or unreadable file simply
// yields no excerpt. Results are memoized per (path, kind) for the
// duration of a run.
package extract
