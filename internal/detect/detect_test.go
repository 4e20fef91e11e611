package detect_test

import (
	"strings"
	"testing"

	"tidy/internal/detect"
	"tidy/internal/extract"
	"tidy/internal/scan"
)

// stubExcerpter serves canned excerpts keyed by path.
type stubExcerpter struct {
	text     map[string]string
	listings map[string][]string
}

func (s *stubExcerpter) Text(path string) (extract.Excerpt, bool) {
	return s.pdfLike(path)
}

func (s *stubExcerpter) PDFText(path string) (extract.Excerpt, bool) {
	return s.pdfLike(path)
}

func (s *stubExcerpter) pdfLike(path string) (extract.Excerpt, bool) {
	body, ok := s.text[path]
	if !ok {
		return extract.Excerpt{}, false
	}
	return extract.Excerpt{Kind: extract.KindText, Payload: body}, true
}

func (s *stubExcerpter) Listing(path string) (extract.Excerpt, bool) {
	entries, ok := s.listings[path]
	if !ok {
		return extract.Excerpt{}, false
	}
	return extract.Excerpt{Kind: extract.KindListing, Payload: strings.Join(entries, "\n")}, true
}

func fdFor(name string) scan.FileDescriptor {
	fd := scan.FileDescriptor{Path: "/src/" + name, Name: name}
	if i := strings.LastIndex(name, "."); i >= 0 {
		fd.Extension = strings.ToLower(name[i+1:])
	}
	return fd
}

func TestScreenshotDetectorMatchesCaptureNames(t *testing.T) {
	d := detect.NewScreenshotDetector()
	ex := &stubExcerpter{}

	for _, name := range []string{
		"Screen Shot 2024-01-15 at 10.30.45 AM.png",
		"Screenshot 2024-01-15 103045.png",
		"Screenshot (42).png",
		"Bildschirmfoto 2024-01-15.png",
		"Captura de pantalla 2024.png",
	} {
		vote, ok := d.Detect(fdFor(name), ex)
		if !ok {
			t.Fatalf("expected vote for %q", name)
		}
		if vote.Category != "Screenshots" || vote.Confidence != detect.ConfidenceHigh {
			t.Fatalf("unexpected vote for %q: %+v", name, vote)
		}
	}

	if _, ok := d.Detect(fdFor("Screenshot notes.txt"), ex); ok {
		t.Fatal("non-image extension should abstain")
	}
	if _, ok := d.Detect(fdFor("holiday.png"), ex); ok {
		t.Fatal("plain image name should abstain")
	}
}

func TestArxivDetectorMatchesIdentifiers(t *testing.T) {
	d := detect.NewArxivDetector()
	ex := &stubExcerpter{}

	vote, ok := d.Detect(fdFor("2501.12948v2.pdf"), ex)
	if !ok || vote.Category != "Papers" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("unexpected vote: %+v ok=%v", vote, ok)
	}
	if _, ok := d.Detect(fdFor("2501.12948.epub"), ex); ok {
		t.Fatal("non-pdf should abstain")
	}
	if _, ok := d.Detect(fdFor("report2501.12948.pdf"), ex); ok {
		t.Fatal("pattern should anchor to the whole stem")
	}
}

func TestInvoiceDetectorGradesConfidence(t *testing.T) {
	d := detect.NewInvoiceDetector()

	strongPath := "/src/a.pdf"
	weakPath := "/src/b.pdf"
	ex := &stubExcerpter{text: map[string]string{
		strongPath: "Invoice Number: 8841\nBill To: Acme Corp",
		weakPath:   "your receipt is attached",
	}}

	vote, ok := d.Detect(scan.FileDescriptor{Path: strongPath, Name: "a.pdf", Extension: "pdf"}, ex)
	if !ok || vote.Confidence != detect.ConfidenceHigh || vote.Category != "Documents" {
		t.Fatalf("expected high-confidence Documents, got %+v ok=%v", vote, ok)
	}

	vote, ok = d.Detect(scan.FileDescriptor{Path: weakPath, Name: "b.pdf", Extension: "pdf"}, ex)
	if !ok || vote.Confidence != detect.ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %+v ok=%v", vote, ok)
	}

	if _, ok := d.Detect(scan.FileDescriptor{Path: "/src/c.pdf", Name: "c.pdf", Extension: "pdf"}, ex); ok {
		t.Fatal("no excerpt should abstain")
	}
}

func TestPaperDetectorDOIWinsOutright(t *testing.T) {
	d := detect.NewPaperDetector()
	path := "/src/p.pdf"
	ex := &stubExcerpter{text: map[string]string{
		path: "see doi 10.48550/arXiv.2501.12948 for details",
	}}

	vote, ok := d.Detect(scan.FileDescriptor{Path: path, Name: "p.pdf", Extension: "pdf"}, ex)
	if !ok || vote.Category != "Papers" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("unexpected vote: %+v ok=%v", vote, ok)
	}
}

func TestBookDetectorEbookAndISBN(t *testing.T) {
	d := detect.NewBookDetector()
	ex := &stubExcerpter{text: map[string]string{
		"/src/b.pdf": "ISBN 978-0-13-468599-1\nFirst Edition",
	}}

	vote, ok := d.Detect(fdFor("novel.epub"), ex)
	if !ok || vote.Category != "Books" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("expected ebook vote, got %+v ok=%v", vote, ok)
	}

	vote, ok = d.Detect(scan.FileDescriptor{Path: "/src/b.pdf", Name: "b.pdf", Extension: "pdf"}, ex)
	if !ok || vote.Category != "Books" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("expected ISBN vote, got %+v ok=%v", vote, ok)
	}
}

func TestArchiveBookDetectorInspectsListing(t *testing.T) {
	d := detect.NewArchiveBookDetector()
	path := "/src/bundle.zip"
	ex := &stubExcerpter{listings: map[string][]string{
		path: {"cover.jpg", "book.epub", "extras/manual.pdf"},
	}}

	vote, ok := d.Detect(scan.FileDescriptor{Path: path, Name: "bundle.zip", Extension: "zip"}, ex)
	if !ok || vote.Category != "Books" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("unexpected vote: %+v ok=%v", vote, ok)
	}
}

func TestArchiveBookDetectorFallsBackToFilename(t *testing.T) {
	d := detect.NewArchiveBookDetector()
	ex := &stubExcerpter{}

	vote, ok := d.Detect(fdFor("Go Handbook.rar"), ex)
	if !ok || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("expected strong keyword vote, got %+v ok=%v", vote, ok)
	}

	vote, ok = d.Detect(fdFor("Mastering Practical Things.7z"), ex)
	if !ok || vote.Confidence != detect.ConfidenceMedium {
		t.Fatalf("expected moderate keyword vote, got %+v ok=%v", vote, ok)
	}

	if _, ok := d.Detect(fdFor("photos.rar"), ex); ok {
		t.Fatal("plain archive should abstain")
	}
}

func TestExtensionDetectorFallback(t *testing.T) {
	d := detect.NewExtensionDetector()
	ex := &stubExcerpter{}

	vote, ok := d.Detect(fdFor("song.mp3"), ex)
	if !ok || vote.Category != "Audio" || vote.Confidence != detect.ConfidenceHigh {
		t.Fatalf("unexpected vote: %+v ok=%v", vote, ok)
	}

	vote, ok = d.Detect(fdFor("mystery.xyz"), ex)
	if !ok || vote.Category != "Unsorted" || vote.Confidence != 0.3 {
		t.Fatalf("expected low-confidence Unsorted, got %+v ok=%v", vote, ok)
	}
}

func TestChainPicksHighestConfidence(t *testing.T) {
	chain := detect.NewDefaultChain()
	ex := &stubExcerpter{}

	res := chain.Resolve(fdFor("Screenshot 2024-01-15 at 10.30.45.png"), ex)
	if res.Category != "Screenshots" || res.Detector != "screenshot" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if res.Confidence != detect.ConfidenceHigh {
		t.Fatalf("unexpected confidence: %v", res.Confidence)
	}
}

func TestChainTieBreakPrefersLowerPriority(t *testing.T) {
	chain := detect.NewDefaultChain()
	path := "/src/2501.12948.pdf"
	// Both arxiv (priority 10) and paper (priority 12) vote high.
	ex := &stubExcerpter{text: map[string]string{
		path: "doi 10.48550/arXiv.2501.12948",
	}}

	res := chain.Resolve(scan.FileDescriptor{Path: path, Name: "2501.12948.pdf", Extension: "pdf"}, ex)
	if res.Detector != "arxiv" {
		t.Fatalf("expected arxiv to win the tie, got %q", res.Detector)
	}
	if res.Category != "Papers" {
		t.Fatalf("unexpected category: %q", res.Category)
	}
}

func TestChainNoVotesResolvesUnsorted(t *testing.T) {
	chain := detect.NewChain(detect.NewScreenshotDetector())
	res := chain.Resolve(fdFor("whatever.txt"), &stubExcerpter{})
	if res.Category != "Unsorted" || res.Confidence != 0 || res.Detector != "" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestChainIntegratesWithRealExtractor(t *testing.T) {
	chain := detect.NewDefaultChain()
	res := chain.Resolve(fdFor("notes.txt"), extract.New())
	if res.Category != "Documents" || res.Detector != "extension" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}
