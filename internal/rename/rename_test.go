package rename_test

import (
	"testing"
	"time"

	"tidy/internal/detect"
	"tidy/internal/extract"
	"tidy/internal/rename"
	"tidy/internal/scan"
)

type stubSource struct {
	pdfText   map[string]string
	pdfInfo   map[string]extract.PDFMetadata
	epub      map[string]extract.BookMetadata
	imageDate map[string]time.Time
}

func (s *stubSource) PDFText(path string) (extract.Excerpt, bool) {
	body, ok := s.pdfText[path]
	if !ok {
		return extract.Excerpt{}, false
	}
	return extract.Excerpt{Kind: extract.KindText, Payload: body}, true
}

func (s *stubSource) PDFInfo(path string) (extract.PDFMetadata, bool) {
	meta, ok := s.pdfInfo[path]
	return meta, ok
}

func (s *stubSource) EPUBMetadata(path string) (extract.BookMetadata, bool) {
	meta, ok := s.epub[path]
	return meta, ok
}

func (s *stubSource) ImageDate(path string) (time.Time, bool) {
	taken, ok := s.imageDate[path]
	return taken, ok
}

var modTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

func fileNamed(name, ext string) scan.FileDescriptor {
	return scan.FileDescriptor{
		Path:      "/src/" + name,
		Name:      name,
		Extension: ext,
		Modified:  modTime,
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Report: Q1 2024", "Report Q1 2024"},
		{`file/with\bad:chars*?`, "file with bad chars"},
		{"  lots   of\t space ", "lots of space"},
		{"...hidden", "hidden"},
		{"", "unnamed"},
		{"///", "unnamed"},
	}
	for _, tc := range cases {
		if got := rename.Sanitize(tc.in, 0); got != tc.want {
			t.Fatalf("Sanitize(%q)=%q want %q", tc.in, got, tc.want)
		}
	}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := rename.Sanitize(string(long), 0); len(got) != rename.DefaultMaxNameLength {
		t.Fatalf("expected cap at %d, got %d", rename.DefaultMaxNameLength, len(got))
	}
	if got := rename.Sanitize("abcdef", 3); got != "abc" {
		t.Fatalf("expected custom cap, got %q", got)
	}
}

func TestIsUgly(t *testing.T) {
	ugly := []string{
		"1743151465964",
		"07c5711b-687f-fa1b-4a37-bbb6cf4383aa",
		"d41d8cd98f00b204e9800998ecf8427e",
		"",
	}
	for _, stem := range ugly {
		if !rename.IsUgly(stem) {
			t.Fatalf("expected %q to be ugly", stem)
		}
	}
	pretty := []string{"Annual_Report_2024", "holiday photos", "invoice_acme"}
	for _, stem := range pretty {
		if rename.IsUgly(stem) {
			t.Fatalf("expected %q to be kept", stem)
		}
	}
}

func TestScreenshotTimestamp(t *testing.T) {
	got, ok := rename.ScreenshotTimestamp("Screen Shot 2024-01-15 at 10.30.45 PM.png")
	if !ok {
		t.Fatal("expected timestamp")
	}
	want := time.Date(2024, 1, 15, 22, 30, 45, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got, ok = rename.ScreenshotTimestamp("Screenshot 2024-01-15 103045.png")
	if !ok || got.Hour() != 10 || got.Minute() != 30 {
		t.Fatalf("windows layout failed: %v ok=%v", got, ok)
	}

	got, ok = rename.ScreenshotTimestamp("Captura de pantalla 2024-03-09.png")
	if !ok || got.Day() != 9 {
		t.Fatalf("date-only layout failed: %v ok=%v", got, ok)
	}

	if _, ok := rename.ScreenshotTimestamp("vacation.png"); ok {
		t.Fatal("expected no timestamp")
	}
}

func TestScreenshotRenamer(t *testing.T) {
	r := rename.NewScreenshotRenamer()
	fd := fileNamed("Screen Shot 2024-01-15 at 10.30.45 AM.png", "png")

	out, ok := r.Rename(fd, detect.Resolution{Detector: "screenshot"}, &stubSource{})
	if !ok {
		t.Fatal("expected outcome")
	}
	if out.NewName != "Screenshot_2024-01-15_10-30-45.png" {
		t.Fatalf("unexpected name: %q", out.NewName)
	}
	if out.Renamer != "screenshot" {
		t.Fatalf("unexpected renamer id: %q", out.Renamer)
	}

	if _, ok := r.Rename(fd, detect.Resolution{Detector: "extension"}, &stubSource{}); ok {
		t.Fatal("expected decline for other detectors")
	}
}

func TestScreenshotRenamerIdempotent(t *testing.T) {
	r := rename.NewScreenshotRenamer()

	// The embedded timestamp disagrees with the modified time on purpose:
	// a standardized name must be parsed back, not rebuilt from mtime.
	fd := fileNamed("Screenshot_2024-01-15_10-30-45.png", "png")
	if out, ok := r.Rename(fd, detect.Resolution{Detector: "screenshot"}, &stubSource{}); ok {
		t.Fatalf("expected no outcome for an already standardized name, got %q", out.NewName)
	}
}

func TestArxivRenamer(t *testing.T) {
	r := rename.NewArxivRenamer()
	fd := fileNamed("2501.12948v1.pdf", "pdf")

	out, ok := r.Rename(fd, detect.Resolution{Detector: "arxiv"}, &stubSource{})
	if !ok || out.NewName != "2024-06-01_2501.12948v1.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestVendorName(t *testing.T) {
	cases := []struct{ text, want string }{
		{"Invoice issued by: Acme Widgets", "Acme Widgets"},
		{"Globex Corp. Invoice #12", "Globex Corp."},
		{"contact billing@initech.com", "initech"},
		{"no vendor here", ""},
	}
	for _, tc := range cases {
		if got := rename.VendorName(tc.text); got != tc.want {
			t.Fatalf("VendorName(%q)=%q want %q", tc.text, got, tc.want)
		}
	}
}

func TestInvoiceRenamer(t *testing.T) {
	r := rename.NewInvoiceRenamer(0)
	fd := fileNamed("scan0001.pdf", "pdf")
	src := &stubSource{pdfText: map[string]string{
		fd.Path: "Invoice issued by: Acme Widgets\nTotal due: $10",
	}}

	out, ok := r.Rename(fd, detect.Resolution{Detector: "invoice"}, src)
	if !ok || out.NewName != "2024-06-01_Invoice_Acme Widgets.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
	if out.Title != "Acme Widgets" {
		t.Fatalf("unexpected title: %q", out.Title)
	}

	// Without text the vendor segment is dropped.
	out, ok = r.Rename(fd, detect.Resolution{Detector: "invoice"}, &stubSource{})
	if !ok || out.NewName != "2024-06-01_Invoice.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestGenericRenamerOnlyFiresOnUglyNames(t *testing.T) {
	r := rename.NewGenericRenamer(0)
	src := &stubSource{}

	out, ok := r.Rename(fileNamed("1743151465964.png", "png"), detect.Resolution{}, src)
	if !ok || out.NewName != "2024-06-01_1743151465964.png" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}

	if _, ok := r.Rename(fileNamed("holiday photos.png", "png"), detect.Resolution{}, src); ok {
		t.Fatal("expected decline for a human-chosen name")
	}
}

func TestPDFRenamerUsesMetadataTitleAndDate(t *testing.T) {
	r := rename.NewPDFRenamer(0)
	fd := fileNamed("a1b2c3d4e5f60718.pdf", "pdf")
	src := &stubSource{pdfInfo: map[string]extract.PDFMetadata{
		fd.Path: {Title: "Quarterly Report", Created: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
	}}

	out, ok := r.Rename(fd, detect.Resolution{Detector: "extension"}, src)
	if !ok || out.NewName != "2024-02-02_Quarterly Report.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestPDFRenamerFallsBackToTextHeading(t *testing.T) {
	r := rename.NewPDFRenamer(0)
	fd := fileNamed("a1b2c3d4e5f60718.pdf", "pdf")
	src := &stubSource{pdfText: map[string]string{
		fd.Path: "Page 1\nDeep Residual Learning\nauthors...",
	}}

	out, ok := r.Rename(fd, detect.Resolution{Detector: "extension"}, src)
	if !ok || out.NewName != "2024-06-01_Deep Residual Learning.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestImageRenamerPrefersEXIFDate(t *testing.T) {
	r := rename.NewImageRenamer(0)
	fd := fileNamed("1718000000000.jpg", "jpg")
	src := &stubSource{imageDate: map[string]time.Time{
		fd.Path: time.Date(2023, 12, 25, 14, 0, 0, 0, time.UTC),
	}}

	out, ok := r.Rename(fd, detect.Resolution{Detector: "extension"}, src)
	if !ok || out.NewName != "2023-12-25_1718000000000.jpg" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}

	if _, ok := r.Rename(fileNamed("wedding.jpg", "jpg"), detect.Resolution{}, &stubSource{}); ok {
		t.Fatal("expected decline for a human-chosen name")
	}
}

func TestBookRenamerFromEPUBMetadata(t *testing.T) {
	r := rename.NewBookRenamer(0)
	fd := fileNamed("download (3).epub", "epub")
	src := &stubSource{epub: map[string]extract.BookMetadata{
		fd.Path: {Title: "The Go Programming Language", Author: "Alan Donovan", Year: "2015"},
	}}

	out, ok := r.Rename(fd, detect.Resolution{Detector: "book"}, src)
	if !ok || out.NewName != "2015_The Go Programming Language_Alan Donovan.epub" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestBookRenamerFilenameFallback(t *testing.T) {
	r := rename.NewBookRenamer(0)
	fd := fileNamed("learning-go-2020.pdf", "pdf")

	out, ok := r.Rename(fd, detect.Resolution{Detector: "book"}, &stubSource{})
	if !ok || out.NewName != "2020_learning go.pdf" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}

func TestRegistryFallsBackToGeneric(t *testing.T) {
	reg := rename.NewDefaultRegistry(0)
	src := &stubSource{}

	// Unmapped detector with an ugly name lands on the generic renamer.
	out, ok := reg.Resolve(fileNamed("1743151465964.dmg", "dmg"), detect.Resolution{Detector: "installer"}, src)
	if !ok || out.Renamer != "generic" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}

	// A human-chosen name is kept.
	if _, ok := reg.Resolve(fileNamed("Ubuntu Installer.dmg", "dmg"), detect.Resolution{Detector: "installer"}, src); ok {
		t.Fatal("expected no outcome")
	}
}

func TestRegistryRoutesByDetector(t *testing.T) {
	reg := rename.NewDefaultRegistry(0)
	fd := fileNamed("Screen Shot 2024-01-15 at 10.30.45 AM.png", "png")

	out, ok := reg.Resolve(fd, detect.Resolution{Detector: "screenshot"}, &stubSource{})
	if !ok || out.Renamer != "screenshot" {
		t.Fatalf("unexpected outcome: %+v ok=%v", out, ok)
	}
}
