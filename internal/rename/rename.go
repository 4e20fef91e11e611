package rename

import (
	"time"

	"tidy/internal/detect"
	"tidy/internal/extract"
	"tidy/internal/scan"
)

// Outcome describes a proposed rename and the fields that produced it.
type Outcome struct {
	NewName string
	Renamer string
	Title   string
	Date    time.Time
}

// Source supplies the metadata renamers draw from. The production
// implementation wraps the run's extractor; tests substitute canned
// values.
type Source interface {
	PDFText(path string) (extract.Excerpt, bool)
	PDFInfo(path string) (extract.PDFMetadata, bool)
	EPUBMetadata(path string) (extract.BookMetadata, bool)
	ImageDate(path string) (time.Time, bool)
}

type extractorSource struct {
	ex *extract.Extractor
}

// NewSource adapts an extractor into a metadata source.
func NewSource(ex *extract.Extractor) Source {
	return &extractorSource{ex: ex}
}

func (s *extractorSource) PDFText(path string) (extract.Excerpt, bool) {
	return s.ex.PDFText(path)
}

func (s *extractorSource) PDFInfo(path string) (extract.PDFMetadata, bool) {
	return extract.PDFInfo(path)
}

func (s *extractorSource) EPUBMetadata(path string) (extract.BookMetadata, bool) {
	return extract.EPUBMetadata(path)
}

func (s *extractorSource) ImageDate(path string) (time.Time, bool) {
	return extract.ImageDate(path)
}

// Renamer proposes a new name for a file, or declines.
type Renamer interface {
	ID() string
	Rename(fd scan.FileDescriptor, res detect.Resolution, src Source) (Outcome, bool)
}

// Registry maps detector ids to renamers. Several renamers may be
// registered for one detector; the first to produce an outcome wins,
// and the generic fallback covers everything else.
type Registry struct {
	byDetector map[string][]Renamer
	fallback   Renamer
}

// NewRegistry returns an empty registry with the given fallback.
func NewRegistry(fallback Renamer) *Registry {
	return &Registry{byDetector: make(map[string][]Renamer), fallback: fallback}
}

// NewDefaultRegistry wires the standard renamer lineup. maxName caps
// generated stems; zero means the default.
func NewDefaultRegistry(maxName int) *Registry {
	r := NewRegistry(NewGenericRenamer(maxName))
	r.Register("screenshot", NewScreenshotRenamer())
	r.Register("arxiv", NewArxivRenamer())
	r.Register("invoice", NewInvoiceRenamer(maxName))
	r.Register("book", NewBookRenamer(maxName))
	r.Register("archive-book", NewBookRenamer(maxName))
	r.Register("extension", NewPDFRenamer(maxName))
	r.Register("extension", NewImageRenamer(maxName))
	return r
}

// Register appends a renamer for a detector id.
func (r *Registry) Register(detector string, renamer Renamer) {
	r.byDetector[detector] = append(r.byDetector[detector], renamer)
}

// Resolve picks the renamer for the resolution's detector and falls
// back to the generic one. Returns false when the file keeps its name.
func (r *Registry) Resolve(fd scan.FileDescriptor, res detect.Resolution, src Source) (Outcome, bool) {
	for _, renamer := range r.byDetector[res.Detector] {
		if out, ok := renamer.Rename(fd, res, src); ok {
			return out, true
		}
	}
	if r.fallback == nil {
		return Outcome{}, false
	}
	return r.fallback.Rename(fd, res, src)
}
