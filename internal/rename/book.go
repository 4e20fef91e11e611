package rename

import (
	"regexp"
	"strconv"
	"strings"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

const (
	maxBookTitle  = 60
	maxBookAuthor = 30
)

var yearInName = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var separatorRun = regexp.MustCompile(`[_\-]+`)

// BookRenamer names books {year}_{title}_{author}.{ext}, reading
// metadata from PDF document info or the EPUB package document and
// falling back to cleaning up the filename itself.
type BookRenamer struct {
	maxName int
}

func NewBookRenamer(maxName int) *BookRenamer {
	return &BookRenamer{maxName: maxName}
}

func (*BookRenamer) ID() string { return "book" }

func (r *BookRenamer) Rename(fd scan.FileDescriptor, _ detect.Resolution, src Source) (Outcome, bool) {
	var title, author, year string

	switch fd.Extension {
	case "pdf":
		if meta, ok := src.PDFInfo(fd.Path); ok && len(meta.Title) >= 3 {
			title, author = meta.Title, meta.Author
			if !meta.Created.IsZero() {
				year = strconv.Itoa(meta.Created.Year())
			}
		}
	case "epub":
		if meta, ok := src.EPUBMetadata(fd.Path); ok {
			title, author, year = meta.Title, meta.Author, meta.Year
		}
	}

	if title == "" {
		title, year = metadataFromFilename(fd)
		if title == "" {
			return Outcome{}, false
		}
	}

	newName := r.buildName(title, author, year, fd.Extension)
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Title: title}, true
}

// metadataFromFilename treats the stem itself as the title, pulling out
// an embedded year and normalizing separators.
func metadataFromFilename(fd scan.FileDescriptor) (title, year string) {
	stem := fd.Stem()
	year = yearInName.FindString(stem)
	if year == "" {
		year = strconv.Itoa(fd.Modified.Year())
	}

	title = yearInName.ReplaceAllString(stem, "")
	title = separatorRun.ReplaceAllString(title, " ")
	title = spaceRun.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return "", ""
	}
	return title, year
}

func (r *BookRenamer) buildName(title, author, year, ext string) string {
	if len(title) > maxBookTitle {
		title = trimAtWord(title, maxBookTitle)
	}
	title = Sanitize(title, r.maxName)

	parts := make([]string, 0, 3)
	if year != "" {
		parts = append(parts, year)
	}
	parts = append(parts, title)
	if author != "" {
		author = Sanitize(author, r.maxName)
		if len(author) > maxBookAuthor {
			author = trimAtWord(author, maxBookAuthor)
		}
		parts = append(parts, author)
	}

	stem := strings.Join(parts, "_")
	if ext != "" {
		return stem + "." + ext
	}
	return stem
}
