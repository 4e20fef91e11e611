package detect

import (
	"fmt"
	"regexp"

	"tidy/internal/scan"
)

// Invoice vocabulary across the languages commonly seen in downloads.
var invoiceKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binvoice\b`),
	regexp.MustCompile(`(?i)\breceipt\b`),
	regexp.MustCompile(`(?i)\bbill\s+to\b`),
	regexp.MustCompile(`(?i)\bpayment\s+due\b`),
	regexp.MustCompile(`(?i)\bsubtotal\b`),
	regexp.MustCompile(`(?i)\btotal\s+due\b`),
	regexp.MustCompile(`(?i)\bamount\s+due\b`),
	regexp.MustCompile(`(?i)\border\s+confirmation\b`),
	regexp.MustCompile(`(?i)\bfactura\b`),
	regexp.MustCompile(`(?i)\brecibo\b`),
	regexp.MustCompile(`(?i)\bcomprobante\b`),
	regexp.MustCompile(`(?i)\brechnung\b`),
	regexp.MustCompile(`(?i)\bquittung\b`),
	regexp.MustCompile(`(?i)\bbeleg\b`),
	regexp.MustCompile(`(?i)\bfacture\b`),
	regexp.MustCompile(`(?i)\bre[cç]u\b`),
	regexp.MustCompile(`(?i)\bnota\s+fiscal\b`),
	regexp.MustCompile(`(?i)\bfattura\b`),
	regexp.MustCompile(`(?i)\bricevuta\b`),
}

// Fields that essentially only appear on invoices.
var invoiceStrongIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binvoice\s*(number|no\.?|#)\s*:?\s*\w+`),
	regexp.MustCompile(`(?i)\binvoice\s+date\b`),
	regexp.MustCompile(`(?i)\bbill\s+to\s*:`),
	regexp.MustCompile(`(?i)\bpayment\s+terms\b`),
	regexp.MustCompile(`(?i)\btax\s+id\b`),
	regexp.MustCompile(`(?i)\bvat\s*(number|no\.?|#)?\s*:?`),
}

// InvoiceDetector classifies PDFs whose text reads like an invoice or
// receipt.
type InvoiceDetector struct{}

func NewInvoiceDetector() *InvoiceDetector { return &InvoiceDetector{} }

func (*InvoiceDetector) ID() string    { return "invoice" }
func (*InvoiceDetector) Priority() int { return 15 }

func (d *InvoiceDetector) Detect(fd scan.FileDescriptor, ex Excerpter) (Vote, bool) {
	if fd.Extension != "pdf" {
		return Vote{}, false
	}
	excerpt, ok := ex.PDFText(fd.Path)
	if !ok {
		return Vote{}, false
	}
	text := excerpt.Payload

	for _, pattern := range invoiceStrongIndicators {
		if pattern.MatchString(text) {
			return Vote{
				Category:   "Documents",
				Confidence: ConfidenceHigh,
				Detector:   d.ID(),
				Rationale:  "invoice-specific fields",
			}, true
		}
	}

	hits := 0
	for _, pattern := range invoiceKeywords {
		if pattern.MatchString(text) {
			hits++
		}
	}
	switch {
	case hits >= 3:
		return Vote{
			Category:   "Documents",
			Confidence: ConfidenceHigh,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("%d invoice keywords", hits),
		}, true
	case hits >= 1:
		return Vote{
			Category:   "Documents",
			Confidence: ConfidenceMedium,
			Detector:   d.ID(),
			Rationale:  "invoice-related keywords",
		}, true
	}
	return Vote{}, false
}
