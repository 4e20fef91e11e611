// Package rename generates informative filenames from file content and
// metadata. A registry maps detector ids to specialized renamers with a
// generic fallback; every renamer extracts {date, title, author/vendor}
// through a fixed fallback order (structured metadata, then content
// heuristics, then the file's modified time) and emits nothing when the
// computed name would not improve on the original.
package rename
