package detect

import (
	"fmt"
	"regexp"

	"tidy/internal/scan"
)

var ebookExtensions = map[string]struct{}{
	"epub": {}, "mobi": {}, "azw": {}, "azw3": {}, "fb2": {},
}

var isbnPattern = regexp.MustCompile(`(?i)\bISBN[-:\s]*[\d\-\sXx]{10,17}\b`)

var bookKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bedition\b`),
	regexp.MustCompile(`(?i)\bchapter\s+\d+\b`),
	regexp.MustCompile(`(?i)\bpreface\b`),
	regexp.MustCompile(`(?i)\bforeword\b`),
	regexp.MustCompile(`(?i)\bepilogue\b`),
	regexp.MustCompile(`(?i)\bprologue\b`),
	regexp.MustCompile(`(?i)\btable\s+of\s+contents\b`),
	regexp.MustCompile(`(?i)\backnowledgments?\b`),
	regexp.MustCompile(`(?i)\bbibliography\b`),
	regexp.MustCompile(`(?i)\bappendix\b`),
	regexp.MustCompile(`(?i)\bindex\b`),
	regexp.MustCompile(`(?i)\bcopyright\s+©?\s*\d{4}\b`),
	regexp.MustCompile(`(?i)\ball\s+rights\s+reserved\b`),
	regexp.MustCompile(`(?i)\bpublished\s+by\b`),
	regexp.MustCompile(`(?i)\bprinted\s+in\b`),
}

// BookDetector recognizes ebook formats outright and sniffs PDF text
// for ISBNs and book front-matter vocabulary.
type BookDetector struct{}

func NewBookDetector() *BookDetector { return &BookDetector{} }

func (*BookDetector) ID() string    { return "book" }
func (*BookDetector) Priority() int { return 20 }

func (d *BookDetector) Detect(fd scan.FileDescriptor, ex Excerpter) (Vote, bool) {
	if _, ok := ebookExtensions[fd.Extension]; ok {
		return Vote{
			Category:   "Books",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("ebook format (.%s)", fd.Extension),
		}, true
	}
	if fd.Extension != "pdf" {
		return Vote{}, false
	}
	excerpt, ok := ex.PDFText(fd.Path)
	if !ok {
		return Vote{}, false
	}
	text := excerpt.Payload

	if isbnPattern.MatchString(text) {
		return Vote{
			Category:   "Books",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  "contains ISBN",
		}, true
	}

	hits := 0
	for _, pattern := range bookKeywords {
		if pattern.MatchString(text) {
			hits++
		}
	}
	switch {
	case hits >= 4:
		return Vote{
			Category:   "Books",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("%d book keywords", hits),
		}, true
	case hits >= 2:
		return Vote{
			Category:   "Books",
			Confidence: ConfidenceMedium,
			Detector:   d.ID(),
			Rationale:  "book-related keywords",
		}, true
	}
	return Vote{}, false
}
