package rename

import (
	"fmt"
	"regexp"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

var arxivID = regexp.MustCompile(`\d{4}\.\d{4,5}(v\d+)?`)

// ArxivRenamer keeps the arXiv identifier and prefixes the download
// date: {date}_{arxiv_id}.pdf.
type ArxivRenamer struct{}

func NewArxivRenamer() *ArxivRenamer { return &ArxivRenamer{} }

func (*ArxivRenamer) ID() string { return "arxiv" }

func (r *ArxivRenamer) Rename(fd scan.FileDescriptor, res detect.Resolution, _ Source) (Outcome, bool) {
	if res.Detector != "arxiv" {
		return Outcome{}, false
	}
	id := arxivID.FindString(fd.Stem())
	if id == "" {
		return Outcome{}, false
	}
	newName := fmt.Sprintf("%s_%s.pdf", FormatDate(fd.Modified), id)
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Date: fd.Modified}, true
}
