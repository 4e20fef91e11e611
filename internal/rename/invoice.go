package rename

import (
	"fmt"
	"regexp"
	"strings"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

var vendorPatterns = []*regexp.Regexp{
	// "From: Company Name" or "issued by Company"; stays on one line
	regexp.MustCompile(`(?i)(?:from|by|issued by)[:\s]+([A-Z][A-Za-z0-9 \t&.,'-]+)`),
	// "Company Name Inc." and similar legal suffixes
	regexp.MustCompile(`(?i)([A-Z][A-Za-z0-9 \t&]+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|GmbH|S\.A\.))`),
	// email domain as a last resort
	regexp.MustCompile(`(?i)@([a-z0-9-]+)\.[a-z]{2,}`),
}

var spaceRun = regexp.MustCompile(`\s+`)

// VendorName pulls a plausible company name out of invoice text.
func VendorName(text string) string {
	for _, pattern := range vendorPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		vendor := strings.TrimSpace(spaceRun.ReplaceAllString(m[1], " "))
		if len(vendor) >= 2 && len(vendor) <= 50 {
			return vendor
		}
	}
	return ""
}

// InvoiceRenamer builds {date}_Invoice_{vendor}.pdf, dropping the
// vendor segment when none can be extracted.
type InvoiceRenamer struct {
	maxName int
}

func NewInvoiceRenamer(maxName int) *InvoiceRenamer {
	return &InvoiceRenamer{maxName: maxName}
}

func (*InvoiceRenamer) ID() string { return "invoice" }

func (r *InvoiceRenamer) Rename(fd scan.FileDescriptor, res detect.Resolution, src Source) (Outcome, bool) {
	if res.Detector != "invoice" || fd.Extension != "pdf" {
		return Outcome{}, false
	}

	vendor := ""
	if excerpt, ok := src.PDFText(fd.Path); ok {
		vendor = VendorName(excerpt.Payload)
	}

	date := FormatDate(fd.Modified)
	var stem string
	if vendor != "" {
		clean := Sanitize(vendor, r.maxName)
		if len(clean) > 30 {
			clean = trimAtWord(clean, 30)
		}
		stem = fmt.Sprintf("%s_Invoice_%s", date, clean)
	} else {
		stem = fmt.Sprintf("%s_Invoice", date)
	}

	newName := stem + ".pdf"
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Title: vendor, Date: fd.Modified}, true
}

// trimAtWord cuts s to at most n bytes, preferring a word boundary.
func trimAtWord(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if i := strings.LastIndexAny(cut, " _"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " _")
}
