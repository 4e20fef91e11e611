package detect

import (
	"regexp"

	"tidy/internal/scan"
)

// arXiv identifiers: YYMM.NNNNN with an optional version suffix.
var arxivStem = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)

// ArxivDetector recognizes arXiv preprints downloaded under their
// identifier, like 2501.12948v2.pdf.
type ArxivDetector struct{}

func NewArxivDetector() *ArxivDetector { return &ArxivDetector{} }

func (*ArxivDetector) ID() string    { return "arxiv" }
func (*ArxivDetector) Priority() int { return 10 }

func (d *ArxivDetector) Detect(fd scan.FileDescriptor, _ Excerpter) (Vote, bool) {
	if fd.Extension != "pdf" {
		return Vote{}, false
	}
	if !arxivStem.MatchString(fd.Stem()) {
		return Vote{}, false
	}
	return Vote{
		Category:   "Papers",
		Confidence: ConfidenceHigh,
		Detector:   d.ID(),
		Rationale:  "arXiv identifier filename",
	}, true
}
