package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFMetadata holds fields read from a PDF's document info dictionary.
type PDFMetadata struct {
	Title   string
	Author  string
	Created time.Time
}

// pdfText reads text from the first maxPages pages. The underlying
// parser panics on some malformed files, so everything is recovered
// into a plain "no excerpt" result.
func pdfText(path string, maxPages, maxChars int) (text string, truncated, ok bool) {
	defer func() {
		if recover() != nil {
			text, truncated, ok = "", false, false
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", false, false
	}
	defer f.Close()

	pages := reader.NumPage()
	var b strings.Builder
	for i := 1; i <= pages && i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
		if b.Len() >= maxChars {
			break
		}
	}

	text = b.String()
	if len(text) > maxChars {
		text = text[:maxChars]
		truncated = true
	}
	if pages > maxPages {
		truncated = true
	}
	return text, truncated, true
}

// PDFInfo reads title, author, and creation date from the document info
// dictionary. Returns false when the file is unreadable or carries no
// usable metadata.
func PDFInfo(path string) (meta PDFMetadata, ok bool) {
	defer func() {
		if recover() != nil {
			meta, ok = PDFMetadata{}, false
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return PDFMetadata{}, false
	}
	defer f.Close()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return PDFMetadata{}, false
	}
	meta.Title = strings.TrimSpace(info.Key("Title").Text())
	meta.Author = strings.TrimSpace(info.Key("Author").Text())
	meta.Created, _ = parsePDFDate(info.Key("CreationDate").Text())

	if meta.Title == "" && meta.Author == "" && meta.Created.IsZero() {
		return PDFMetadata{}, false
	}
	return meta, true
}

// parsePDFDate handles the D:YYYYMMDDHHMMSS form, with or without the
// prefix and with trailing timezone noise.
func parsePDFDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "D:"))
	digits := raw
	for i, r := range raw {
		if r < '0' || r > '9' {
			digits = raw[:i]
			break
		}
	}
	for _, layout := range []string{"20060102150405", "200601021504", "2006010215", "20060102", "200601", "2006"} {
		if len(digits) == len(layout) {
			if t, err := time.Parse(layout, digits); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

var nonTitleLine = regexp.MustCompile(`(?i)^(page\b|copyright\b|©|\d+$)`)

// TitleFromText picks a title-like line from extracted text: the first
// of the leading five non-empty lines that is neither too short, too
// long, nor boilerplate.
func TitleFromText(text string) string {
	var seen int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if len(line) < 5 || len(line) > 100 {
			continue
		}
		if nonTitleLine.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}
