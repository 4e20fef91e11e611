package extract_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tidy/internal/extract"
	"tidy/internal/scan"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	w := zip.NewWriter(f)
	for entry, body := range entries {
		ew, err := w.Create(entry)
		if err != nil {
			t.Fatalf("zip entry %s: %v", entry, err)
		}
		if _, err := ew.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", entry, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestTextExcerptBoundedAndCached(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("lorem ipsum ", 1000)
	path := writeFile(t, dir, "big.txt", []byte(big))

	e := extract.New()
	excerpt, ok := e.Text(path)
	if !ok {
		t.Fatal("expected excerpt")
	}
	if excerpt.Kind != extract.KindText {
		t.Fatalf("unexpected kind: %q", excerpt.Kind)
	}
	if len(excerpt.Payload) > 4000 {
		t.Fatalf("payload exceeds bound: %d", len(excerpt.Payload))
	}
	if !excerpt.Truncated {
		t.Fatal("expected truncation flag")
	}

	// Cached result survives file removal.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	again, ok := e.Text(path)
	if !ok || again.Payload != excerpt.Payload {
		t.Fatal("expected memoized excerpt")
	}
}

func TestTextAndPDFTextCacheSeparately(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("plain body"))

	e := extract.New()
	if _, ok := e.Text(path); !ok {
		t.Fatal("expected text excerpt")
	}
	// A cached plain-text hit must not satisfy a PDF query for the same path.
	if got, ok := e.PDFText(path); ok {
		t.Fatalf("expected no pdf excerpt, got %q", got.Payload)
	}
}

func TestTextExcerptRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blob.bin", []byte{0x00, 0x01, 0x02, 'a'})

	if _, ok := extract.New().Text(path); ok {
		t.Fatal("expected no excerpt for binary content")
	}
}

func TestListingEnumeratesEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "bundle.zip", map[string]string{
		"docs/readme.md": "hi",
		"book.epub":      "data",
	})

	excerpt, ok := extract.New().Listing(path)
	if !ok {
		t.Fatal("expected listing")
	}
	entries := excerpt.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
}

func TestListingRejectsNonArchive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "not.zip", []byte("plain text"))

	if _, ok := extract.New().Listing(path); ok {
		t.Fatal("expected no listing for non-archive")
	}
}

func TestPDFTextFailsSoftOnGarbage(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.pdf", []byte("%PDF-1.4 garbage"))

	if _, ok := extract.New().PDFText(path); ok {
		t.Fatal("expected no excerpt for malformed pdf")
	}
	if _, ok := extract.PDFInfo(path); ok {
		t.Fatal("expected no metadata for malformed pdf")
	}
}

func TestForDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	textPath := writeFile(t, dir, "notes.md", []byte("# Notes\nsome text"))
	zipPath := writeZip(t, dir, "archive.zip", map[string]string{"a.txt": "x"})

	e := extract.New()

	fd, err := scan.Describe(textPath)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if excerpt, ok := e.For(fd); !ok || excerpt.Kind != extract.KindText {
		t.Fatalf("expected text excerpt, got %+v ok=%v", excerpt, ok)
	}

	fd, err = scan.Describe(zipPath)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if excerpt, ok := e.For(fd); !ok || excerpt.Kind != extract.KindListing {
		t.Fatalf("expected listing excerpt, got %+v ok=%v", excerpt, ok)
	}

	fd.Extension = "exe"
	if _, ok := e.For(fd); ok {
		t.Fatal("expected no excerpt for unknown format")
	}
}

func TestEPUBMetadata(t *testing.T) {
	dir := t.TempDir()
	container := `<?xml version="1.0"?>
<container xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`
	opf := `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>The Go Programming Language</dc:title>
    <dc:creator>Alan Donovan</dc:creator>
    <dc:date>2015-10-26</dc:date>
  </metadata>
</package>`
	path := writeZip(t, dir, "book.epub", map[string]string{
		"META-INF/container.xml": container,
		"OEBPS/content.opf":      opf,
	})

	meta, ok := extract.EPUBMetadata(path)
	if !ok {
		t.Fatal("expected metadata")
	}
	if meta.Title != "The Go Programming Language" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.Author != "Alan Donovan" {
		t.Fatalf("unexpected author: %q", meta.Author)
	}
	if meta.Year != "2015" {
		t.Fatalf("unexpected year: %q", meta.Year)
	}
}

func TestEPUBMetadataFallsBackToOPFScan(t *testing.T) {
	dir := t.TempDir()
	opf := `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Standalone</dc:title>
  </metadata>
</package>`
	path := writeZip(t, dir, "loose.epub", map[string]string{"content.opf": opf})

	meta, ok := extract.EPUBMetadata(path)
	if !ok || meta.Title != "Standalone" {
		t.Fatalf("expected fallback metadata, got %+v ok=%v", meta, ok)
	}
}

func TestEPUBMetadataRejectsShortTitle(t *testing.T) {
	dir := t.TempDir()
	opf := `<package xmlns="http://www.idpf.org/2007/opf"><metadata xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>ab</dc:title></metadata></package>`
	path := writeZip(t, dir, "short.epub", map[string]string{"x.opf": opf})

	if _, ok := extract.EPUBMetadata(path); ok {
		t.Fatal("expected short title to be rejected")
	}
}

func TestImageDateFailsSoftWithoutEXIF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pic.jpg", []byte("not really a jpeg"))

	if _, ok := extract.ImageDate(path); ok {
		t.Fatal("expected no date")
	}
}

func TestTitleFromText(t *testing.T) {
	text := "Page 1\n42\nAttention Is All You Need\nAshish Vaswani"
	if got := extract.TitleFromText(text); got != "Attention Is All You Need" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := extract.TitleFromText("ab\ncd"); got != "" {
		t.Fatalf("expected no title, got %q", got)
	}
	long := strings.Repeat("x", 150)
	if got := extract.TitleFromText(long + "\nA Proper Heading"); got != "A Proper Heading" {
		t.Fatalf("expected overlong line skipped, got %q", got)
	}
}
