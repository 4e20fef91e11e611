package detect

import (
	"regexp"

	"tidy/internal/scan"
)

// Filename patterns produced by OS capture tools, in several languages.
var screenshotPatterns = []*regexp.Regexp{
	// macOS: "Screen Shot 2024-01-15 at 10.30.45 AM.png"
	regexp.MustCompile(`(?i)^Screen Shot \d{4}-\d{2}-\d{2} at \d{1,2}\.\d{2}\.\d{2}( [AP]M)?`),
	// macOS newer: "Screenshot 2024-01-15 at 10.30.45.png"
	regexp.MustCompile(`(?i)^Screenshot \d{4}-\d{2}-\d{2} at \d{1,2}\.\d{2}\.\d{2}`),
	// Windows Snipping Tool: "Screenshot 2024-01-15 103045.png"
	regexp.MustCompile(`(?i)^Screenshot \d{4}-\d{2}-\d{2} \d{6}`),
	// Windows: "Screenshot (123).png"
	regexp.MustCompile(`(?i)^Screenshot \(\d+\)`),
	regexp.MustCompile(`(?i)^Screenshot[_\s-]`),
	regexp.MustCompile(`(?i)^Screen Shot[_\s-]`),
	// Spanish
	regexp.MustCompile(`(?i)^Captura de pantalla`),
	regexp.MustCompile(`(?i)^Captura[_\s-]`),
	// German
	regexp.MustCompile(`(?i)^Bildschirmfoto`),
	// French
	regexp.MustCompile(`(?i)^Capture d['\x{2019}]écran`),
	// Capture tools
	regexp.MustCompile(`(?i)^CleanShot \d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)^Skitch`),
	regexp.MustCompile(`(?i)^Lightshot`),
	regexp.MustCompile(`(?i)^ShareX`),
	regexp.MustCompile(`(?i)^Greenshot`),
	regexp.MustCompile(`(?i)^Snagit`),
}

var screenshotExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {}, "tiff": {}, "bmp": {},
}

// ScreenshotDetector spots capture-tool filename patterns on image files.
type ScreenshotDetector struct{}

func NewScreenshotDetector() *ScreenshotDetector { return &ScreenshotDetector{} }

func (*ScreenshotDetector) ID() string    { return "screenshot" }
func (*ScreenshotDetector) Priority() int { return 10 }

func (d *ScreenshotDetector) Detect(fd scan.FileDescriptor, _ Excerpter) (Vote, bool) {
	if _, ok := screenshotExtensions[fd.Extension]; !ok {
		return Vote{}, false
	}
	stem := fd.Stem()
	for _, pattern := range screenshotPatterns {
		if pattern.MatchString(stem) {
			return Vote{
				Category:   "Screenshots",
				Confidence: ConfidenceHigh,
				Detector:   d.ID(),
				Rationale:  "capture-tool filename pattern",
			}, true
		}
	}
	return Vote{}, false
}
