package rename

import (
	"fmt"
	"strings"
	"time"

	"tidy/internal/detect"
	"tidy/internal/extract"
	"tidy/internal/scan"
)

// PDFRenamer names documents {date}_{title}.pdf. The title comes from
// the document info dictionary, then from a heading in the text, then
// from the sanitized original stem; the date prefers the embedded
// creation date over the file's modified time. Fires only on
// auto-generated looking names.
type PDFRenamer struct {
	maxName int
}

func NewPDFRenamer(maxName int) *PDFRenamer {
	return &PDFRenamer{maxName: maxName}
}

func (*PDFRenamer) ID() string { return "pdf" }

func (r *PDFRenamer) Rename(fd scan.FileDescriptor, _ detect.Resolution, src Source) (Outcome, bool) {
	if fd.Extension != "pdf" {
		return Outcome{}, false
	}
	if !IsUgly(fd.Stem()) {
		return Outcome{}, false
	}

	title := ""
	var created time.Time
	if meta, ok := src.PDFInfo(fd.Path); ok {
		created = meta.Created
		if len(meta.Title) >= 3 && !strings.EqualFold(meta.Title, fd.Stem()) {
			title = meta.Title
		}
	}
	if title == "" {
		if excerpt, ok := src.PDFText(fd.Path); ok {
			title = extract.TitleFromText(excerpt.Payload)
		}
	}

	date := fd.Modified
	if !created.IsZero() {
		date = created
	}

	var stem string
	if title != "" {
		clean := Sanitize(title, r.maxName)
		if len(clean) > 80 {
			clean = trimAtWord(clean, 80)
		}
		stem = fmt.Sprintf("%s_%s", FormatDate(date), clean)
	} else {
		clean := Sanitize(fd.Stem(), r.maxName)
		if len(clean) < 3 {
			stem = fmt.Sprintf("%s_document", FormatDate(date))
		} else {
			stem = fmt.Sprintf("%s_%s", FormatDate(date), clean)
		}
	}

	newName := stem + ".pdf"
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Title: title, Date: date}, true
}
