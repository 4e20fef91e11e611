package detect

import (
	"sort"

	"tidy/internal/catalog"
	"tidy/internal/extract"
	"tidy/internal/scan"
)

// Semantic confidence bands shared by all detectors.
const (
	ConfidenceHigh   = 0.9
	ConfidenceMedium = 0.7
	ConfidenceLow    = 0.5
)

// Vote is one detector's opinion about a file.
type Vote struct {
	Category   string
	Confidence float64
	Detector   string
	Rationale  string
}

// Excerpter supplies bounded content excerpts on demand. The run's
// *extract.Extractor satisfies it; its cache keeps repeated reads of
// the same file cheap.
type Excerpter interface {
	Text(path string) (extract.Excerpt, bool)
	PDFText(path string) (extract.Excerpt, bool)
	Listing(path string) (extract.Excerpt, bool)
}

// Detector examines a file and either votes or abstains.
type Detector interface {
	ID() string
	// Priority breaks confidence ties; lower values win. More
	// specific detectors carry lower numbers.
	Priority() int
	Detect(fd scan.FileDescriptor, ex Excerpter) (Vote, bool)
}

// Resolution is the chain's final answer for one file.
type Resolution struct {
	Category   string
	Confidence float64
	Detector   string
	Rationale  string
}

// Chain runs every detector and resolves their votes.
type Chain struct {
	detectors []Detector
}

// NewChain registers detectors in priority order.
func NewChain(detectors ...Detector) *Chain {
	c := &Chain{}
	for _, d := range detectors {
		c.Register(d)
	}
	return c
}

// NewDefaultChain builds the standard detector lineup.
func NewDefaultChain() *Chain {
	return NewChain(
		NewScreenshotDetector(),
		NewArxivDetector(),
		NewPaperDetector(),
		NewInvoiceDetector(),
		NewInstallerDetector(),
		NewArchiveBookDetector(),
		NewBookDetector(),
		NewExtensionDetector(),
	)
}

// Register adds a detector, keeping the chain sorted by priority.
func (c *Chain) Register(d Detector) {
	c.detectors = append(c.detectors, d)
	sort.SliceStable(c.detectors, func(i, j int) bool {
		return c.detectors[i].Priority() < c.detectors[j].Priority()
	})
}

// Detectors returns the registered detectors in priority order.
func (c *Chain) Detectors() []Detector {
	return append([]Detector(nil), c.detectors...)
}

// Resolve collects every vote and picks the winner: highest confidence
// first, lowest priority on an exact tie. With no votes at all the
// file resolves to Unsorted at confidence zero.
func (c *Chain) Resolve(fd scan.FileDescriptor, ex Excerpter) Resolution {
	best := Resolution{Category: catalog.UnsortedCategory}
	bestPriority := 0
	voted := false

	for _, d := range c.detectors {
		vote, ok := d.Detect(fd, ex)
		if !ok {
			continue
		}
		if !voted || vote.Confidence > best.Confidence ||
			(vote.Confidence == best.Confidence && d.Priority() < bestPriority) {
			best = Resolution{
				Category:   vote.Category,
				Confidence: vote.Confidence,
				Detector:   vote.Detector,
				Rationale:  vote.Rationale,
			}
			bestPriority = d.Priority()
			voted = true
		}
	}
	return best
}
