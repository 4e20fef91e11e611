package extract

import (
	"bytes"
	"os"
	"strings"

	"tidy/internal/scan"
)

// Kind labels the shape of an excerpt's payload.
type Kind string

const (
	KindText    Kind = "text"
	KindListing Kind = "listing"
	KindTags    Kind = "tags"
)

// Cache-only kind: PDF text and raw text must not share a memo slot for
// the same path.
const kindPDFText Kind = "pdf-text"

// Bounds on extraction cost.
const (
	maxTextBytes      = 4000
	maxPDFPages       = 2
	maxPDFChars       = 5000
	maxListingEntries = 500
)

// Excerpt is a bounded slice of a file's content or metadata.
type Excerpt struct {
	Kind      Kind
	Payload   string
	Truncated bool
}

type cacheKey struct {
	path string
	kind Kind
}

type cacheEntry struct {
	excerpt Excerpt
	ok      bool
}

// Extractor performs memoized content extraction for one run.
type Extractor struct {
	cache map[cacheKey]cacheEntry
}

// New returns an extractor with an empty cache.
func New() *Extractor {
	return &Extractor{cache: make(map[cacheKey]cacheEntry)}
}

func (e *Extractor) memo(path string, kind Kind, fn func() (Excerpt, bool)) (Excerpt, bool) {
	key := cacheKey{path: path, kind: kind}
	if entry, ok := e.cache[key]; ok {
		return entry.excerpt, entry.ok
	}
	excerpt, ok := fn()
	e.cache[key] = cacheEntry{excerpt: excerpt, ok: ok}
	return excerpt, ok
}

// Text returns a bounded plain-text window from the start of the file.
// Binary content yields no excerpt.
func (e *Extractor) Text(path string) (Excerpt, bool) {
	return e.memo(path, KindText, func() (Excerpt, bool) {
		f, err := os.Open(path)
		if err != nil {
			return Excerpt{}, false
		}
		defer f.Close()

		buf := make([]byte, maxTextBytes+1)
		n, err := f.Read(buf)
		if n == 0 {
			return Excerpt{}, false
		}
		buf = buf[:n]
		if bytes.IndexByte(buf, 0) >= 0 {
			return Excerpt{}, false
		}
		truncated := false
		if len(buf) > maxTextBytes {
			buf = buf[:maxTextBytes]
			truncated = true
		}
		payload := strings.ToValidUTF8(string(buf), "")
		if strings.TrimSpace(payload) == "" {
			return Excerpt{}, false
		}
		_ = err
		return Excerpt{Kind: KindText, Payload: payload, Truncated: truncated}, true
	})
}

// PDFText returns text from the first pages of a PDF.
func (e *Extractor) PDFText(path string) (Excerpt, bool) {
	return e.memo(path, kindPDFText, func() (Excerpt, bool) {
		text, truncated, ok := pdfText(path, maxPDFPages, maxPDFChars)
		if !ok || strings.TrimSpace(text) == "" {
			return Excerpt{}, false
		}
		return Excerpt{Kind: KindText, Payload: text, Truncated: truncated}, true
	})
}

// Listing enumerates archive entry names without decompressing anything.
func (e *Extractor) Listing(path string) (Excerpt, bool) {
	return e.memo(path, KindListing, func() (Excerpt, bool) {
		names, truncated, ok := archiveListing(path, maxListingEntries)
		if !ok || len(names) == 0 {
			return Excerpt{}, false
		}
		return Excerpt{Kind: KindListing, Payload: strings.Join(names, "\n"), Truncated: truncated}, true
	})
}

// Entries splits a listing excerpt back into entry names.
func (x Excerpt) Entries() []string {
	if x.Kind != KindListing || x.Payload == "" {
		return nil
	}
	return strings.Split(x.Payload, "\n")
}

var textExtensions = map[string]struct{}{
	"txt": {}, "md": {}, "markdown": {}, "rst": {}, "log": {}, "csv": {},
	"tsv": {}, "json": {}, "xml": {}, "html": {}, "htm": {}, "yaml": {},
	"yml": {}, "toml": {}, "ini": {}, "cfg": {}, "conf": {}, "tex": {},
}

var archiveExtensions = map[string]struct{}{
	"zip": {}, "cbz": {}, "epub": {}, "jar": {},
}

// For dispatches extraction by the file's extension: PDFs get text
// extraction, ZIP-compatible archives an entry listing, known text
// formats a plain-text window. Anything else yields no excerpt.
func (e *Extractor) For(fd scan.FileDescriptor) (Excerpt, bool) {
	switch {
	case fd.Extension == "pdf":
		return e.PDFText(fd.Path)
	case isArchiveExtension(fd.Extension):
		return e.Listing(fd.Path)
	case isTextExtension(fd.Extension):
		return e.Text(fd.Path)
	default:
		return Excerpt{}, false
	}
}

func isTextExtension(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}

func isArchiveExtension(ext string) bool {
	_, ok := archiveExtensions[ext]
	return ok
}
