package detect

import (
	"fmt"
	"regexp"

	"tidy/internal/scan"
)

var doiPattern = regexp.MustCompile(`\b10\.\d{4,}/\S+`)

var paperKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\babstract\b`),
	regexp.MustCompile(`(?i)\breferences\b`),
	regexp.MustCompile(`(?i)\bcitations?\b`),
	regexp.MustCompile(`(?i)\bet\s+al\.?\b`),
	regexp.MustCompile(`(?i)\bconclusions?\b`),
	regexp.MustCompile(`(?i)\bmethodology\b`),
	regexp.MustCompile(`(?i)\bintroduction\b`),
	regexp.MustCompile(`(?i)\brelated\s+work\b`),
	regexp.MustCompile(`(?i)\bexperiments?\b`),
	regexp.MustCompile(`(?i)\bresults?\b`),
	regexp.MustCompile(`(?i)\bdiscussion\b`),
	regexp.MustCompile(`(?i)\bfigure\s+\d+\b`),
	regexp.MustCompile(`(?i)\btable\s+\d+\b`),
	regexp.MustCompile(`(?i)\bequation\s+\d+\b`),
	regexp.MustCompile(`(?i)\btheorem\s+\d+\b`),
	regexp.MustCompile(`(?i)\blemma\s+\d+\b`),
	regexp.MustCompile(`(?i)\bproof\b`),
	regexp.MustCompile(`(?i)\backnowledg[e]?ments?\b`),
	regexp.MustCompile(`(?i)\bfunding\b`),
	regexp.MustCompile(`(?i)\bconflict\s+of\s+interest\b`),
	regexp.MustCompile(`(?i)\bpeer[\s-]?review\b`),
	regexp.MustCompile(`(?i)\bjournal\b`),
	regexp.MustCompile(`(?i)\bproceedings?\b`),
	regexp.MustCompile(`(?i)\bconference\b`),
	regexp.MustCompile(`(?i)\buniversity\b`),
	regexp.MustCompile(`(?i)\bresearch\s+(institute|center|centre|lab)\b`),
	regexp.MustCompile(`(?i)\bdepartment\s+of\b`),
}

var paperStrongIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\babstract\b`),
	regexp.MustCompile(`(?i)\breferences\b`),
	regexp.MustCompile(`(?i)\bet\s+al\.?\b`),
}

// PaperDetector classifies PDFs that read like academic papers, via
// DOIs and the usual structural vocabulary.
type PaperDetector struct{}

func NewPaperDetector() *PaperDetector { return &PaperDetector{} }

func (*PaperDetector) ID() string    { return "paper" }
func (*PaperDetector) Priority() int { return 12 }

func (d *PaperDetector) Detect(fd scan.FileDescriptor, ex Excerpter) (Vote, bool) {
	if fd.Extension != "pdf" {
		return Vote{}, false
	}
	excerpt, ok := ex.PDFText(fd.Path)
	if !ok {
		return Vote{}, false
	}
	text := excerpt.Payload

	if doiPattern.MatchString(text) {
		return Vote{
			Category:   "Papers",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  "contains DOI",
		}, true
	}

	strong := 0
	for _, pattern := range paperStrongIndicators {
		if pattern.MatchString(text) {
			strong++
		}
	}
	hits := 0
	for _, pattern := range paperKeywords {
		if pattern.MatchString(text) {
			hits++
		}
	}

	switch {
	case strong >= 2 && hits >= 5:
		return Vote{
			Category:   "Papers",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("academic paper (%d indicators)", hits),
		}, true
	case hits >= 5:
		return Vote{
			Category:   "Papers",
			Confidence: ConfidenceMedium,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("%d academic keywords", hits),
		}, true
	case strong >= 2 && hits >= 3:
		return Vote{
			Category:   "Papers",
			Confidence: ConfidenceMedium,
			Detector:   d.ID(),
			Rationale:  "academic structure",
		}, true
	}
	return Vote{}, false
}
