package detect

import (
	"fmt"
	"regexp"
	"strings"

	"tidy/internal/scan"
)

// Book formats worth flagging inside an archive.
var archivedBookSuffixes = []string{".epub", ".mobi", ".azw", ".azw3", ".pdf", ".fb2", ".djvu"}

var zipCompatible = map[string]struct{}{
	"zip": {}, "cbz": {}, "cbr": {}, "epub": {},
}

var opaqueArchives = map[string]struct{}{
	"rar": {}, "7z": {}, "tar": {}, "gz": {}, "bz2": {},
}

// One of these in the filename is enough on its own.
var strongBookTitleWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bedition\b`),
	regexp.MustCompile(`(?i)\bhandbook\b`),
	regexp.MustCompile(`(?i)\btextbook\b`),
	regexp.MustCompile(`(?i)\bfor\s+dummies\b`),
	regexp.MustCompile(`(?i)\bcookbook\b`),
	regexp.MustCompile(`(?i)\bdefinitive\b`),
}

// These need at least two hits.
var moderateBookTitleWords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bprogramming\b`),
	regexp.MustCompile(`(?i)\btutorial\b`),
	regexp.MustCompile(`(?i)\bguide\b`),
	regexp.MustCompile(`(?i)\bmanual\b`),
	regexp.MustCompile(`(?i)\blearning\b`),
	regexp.MustCompile(`(?i)\bmastering\b`),
	regexp.MustCompile(`(?i)\bbeginning\b`),
	regexp.MustCompile(`(?i)\badvanced\b`),
	regexp.MustCompile(`(?i)\bintroducing\b`),
	regexp.MustCompile(`(?i)\bintroduction\b`),
	regexp.MustCompile(`(?i)\breference\b`),
	regexp.MustCompile(`(?i)\bessentials?\b`),
	regexp.MustCompile(`(?i)\bpractical\b`),
	regexp.MustCompile(`(?i)\bcomplete\b`),
	regexp.MustCompile(`(?i)\bcomprehensive\b`),
	regexp.MustCompile(`(?i)\bstudy\b`),
	regexp.MustCompile(`(?i)\bcertified\b`),
	regexp.MustCompile(`(?i)\banalyst\b`),
	regexp.MustCompile(`(?i)\bdeveloper\b`),
	regexp.MustCompile(`(?i)\bin\s+action\b`),
	regexp.MustCompile(`(?i)\bpro\s+\w+`),
	regexp.MustCompile(`(?i)\bhead\s+first\b`),
}

// ArchiveBookDetector flags archives that hold books, either by listing
// ZIP contents or by title keywords when the archive is opaque.
type ArchiveBookDetector struct{}

func NewArchiveBookDetector() *ArchiveBookDetector { return &ArchiveBookDetector{} }

func (*ArchiveBookDetector) ID() string    { return "archive-book" }
func (*ArchiveBookDetector) Priority() int { return 18 }

func (d *ArchiveBookDetector) Detect(fd scan.FileDescriptor, ex Excerpter) (Vote, bool) {
	_, inspectable := zipCompatible[fd.Extension]
	_, opaque := opaqueArchives[fd.Extension]
	if !inspectable && !opaque {
		return Vote{}, false
	}

	if inspectable {
		if vote, ok := d.inspectListing(fd, ex); ok {
			return vote, true
		}
	}
	return d.analyzeFilename(fd)
}

func (d *ArchiveBookDetector) inspectListing(fd scan.FileDescriptor, ex Excerpter) (Vote, bool) {
	excerpt, ok := ex.Listing(fd.Path)
	if !ok {
		return Vote{}, false
	}
	found := make(map[string]struct{})
	count := 0
	for _, entry := range excerpt.Entries() {
		lower := strings.ToLower(entry)
		for _, suffix := range archivedBookSuffixes {
			if strings.HasSuffix(lower, suffix) {
				found[strings.TrimPrefix(suffix, ".")] = struct{}{}
				count++
				break
			}
		}
	}
	if count == 0 {
		return Vote{}, false
	}
	kinds := make([]string, 0, len(found))
	for kind := range found {
		kinds = append(kinds, kind)
	}
	return Vote{
		Category:   "Books",
		Confidence: ConfidenceHigh,
		Detector:   d.ID(),
		Rationale:  fmt.Sprintf("contains %d book file(s) (%s)", count, strings.Join(kinds, ", ")),
	}, true
}

func (d *ArchiveBookDetector) analyzeFilename(fd scan.FileDescriptor) (Vote, bool) {
	stem := strings.ToLower(fd.Stem())

	for _, pattern := range strongBookTitleWords {
		if pattern.MatchString(stem) {
			return Vote{
				Category:   "Books",
				Confidence: ConfidenceHigh,
				Detector:   d.ID(),
				Rationale:  "strong book indicator in filename",
			}, true
		}
	}

	hits := 0
	for _, pattern := range moderateBookTitleWords {
		if pattern.MatchString(stem) {
			hits++
		}
	}
	if hits >= 2 {
		return Vote{
			Category:   "Books",
			Confidence: ConfidenceMedium,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("filename suggests book (%d keywords)", hits),
		}, true
	}
	return Vote{}, false
}
