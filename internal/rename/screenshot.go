package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

type screenshotPattern struct {
	re      *regexp.Regexp
	timed   bool
	twelveH bool
}

// Timestamp layouts embedded by the various capture tools.
var screenshotDatePatterns = []screenshotPattern{
	// Our own standardized form. Parsing it back keeps a second pass
	// from regenerating a different name off the modified time.
	{re: regexp.MustCompile(`Screenshot_(\d{4})-(\d{2})-(\d{2})_(\d{2})-(\d{2})-(\d{2})`), timed: true},
	// macOS: "Screen Shot 2024-01-15 at 10.30.45 AM"
	{re: regexp.MustCompile(`(?i)Screen Shot (\d{4})-(\d{2})-(\d{2}) at (\d{1,2})\.(\d{2})\.(\d{2})( [AP]M)?`), timed: true, twelveH: true},
	// macOS newer / CleanShot
	{re: regexp.MustCompile(`(?i)Screenshot (\d{4})-(\d{2})-(\d{2}) at (\d{1,2})\.(\d{2})\.(\d{2})`), timed: true},
	{re: regexp.MustCompile(`(?i)CleanShot (\d{4})-(\d{2})-(\d{2}) at (\d{1,2})\.(\d{2})\.(\d{2})`), timed: true},
	// Windows: "Screenshot 2024-01-15 103045"
	{re: regexp.MustCompile(`(?i)Screenshot (\d{4})-(\d{2})-(\d{2}) (\d{2})(\d{2})(\d{2})`), timed: true},
	// German: "Bildschirmfoto 2024-01-15 um 10.30.45"
	{re: regexp.MustCompile(`(?i)Bildschirmfoto (\d{4})-(\d{2})-(\d{2}) um (\d{1,2})\.(\d{2})\.(\d{2})`), timed: true},
	// Spanish, date only
	{re: regexp.MustCompile(`(?i)Captura de pantalla (\d{4})-(\d{2})-(\d{2})`)},
}

// ScreenshotTimestamp pulls the capture time out of a screenshot
// filename, when the tool embedded one.
func ScreenshotTimestamp(name string) (time.Time, bool) {
	for _, p := range screenshotDatePatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		hour, minute, second := 0, 0, 0
		if p.timed {
			hour, _ = strconv.Atoi(m[4])
			minute, _ = strconv.Atoi(m[5])
			second, _ = strconv.Atoi(m[6])
		}
		if p.twelveH && len(m) > 7 {
			switch strings.ToUpper(strings.TrimSpace(m[7])) {
			case "PM":
				if hour != 12 {
					hour += 12
				}
			case "AM":
				if hour == 12 {
					hour = 0
				}
			}
		}
		if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
			continue
		}
		return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
	}
	return time.Time{}, false
}

// ScreenshotRenamer standardizes capture-tool names to
// Screenshot_{date}_{time}.{ext}, taking the timestamp from the
// original name and falling back to the file's modified time.
type ScreenshotRenamer struct{}

func NewScreenshotRenamer() *ScreenshotRenamer { return &ScreenshotRenamer{} }

func (*ScreenshotRenamer) ID() string { return "screenshot" }

func (r *ScreenshotRenamer) Rename(fd scan.FileDescriptor, res detect.Resolution, _ Source) (Outcome, bool) {
	if res.Detector != "screenshot" {
		return Outcome{}, false
	}
	taken, ok := ScreenshotTimestamp(fd.Name)
	if !ok {
		taken = fd.Modified
	}
	newName := fmt.Sprintf("Screenshot_%s.%s", FormatDateTime(taken), fd.Extension)
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Date: taken}, true
}
