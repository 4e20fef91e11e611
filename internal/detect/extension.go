package detect

import (
	"fmt"

	"tidy/internal/catalog"
	"tidy/internal/scan"
)

type extensionEntry struct {
	category   string
	confidence float64
}

var extensionMap = map[string]extensionEntry{
	// Documents; medium because content detectors know better
	"pdf":     {"Documents", ConfidenceMedium},
	"doc":     {"Documents", ConfidenceMedium},
	"docx":    {"Documents", ConfidenceMedium},
	"txt":     {"Documents", ConfidenceMedium},
	"rtf":     {"Documents", ConfidenceMedium},
	"odt":     {"Documents", ConfidenceMedium},
	"md":      {"Documents", ConfidenceMedium},
	"pages":   {"Documents", ConfidenceMedium},
	"xls":     {"Documents", ConfidenceMedium},
	"xlsx":    {"Documents", ConfidenceMedium},
	"ppt":     {"Documents", ConfidenceMedium},
	"pptx":    {"Documents", ConfidenceMedium},
	"key":     {"Documents", ConfidenceMedium},
	"numbers": {"Documents", ConfidenceMedium},
	// Images
	"jpg":  {"Images", ConfidenceHigh},
	"jpeg": {"Images", ConfidenceHigh},
	"png":  {"Images", ConfidenceHigh},
	"gif":  {"Images", ConfidenceHigh},
	"bmp":  {"Images", ConfidenceHigh},
	"webp": {"Images", ConfidenceHigh},
	"svg":  {"Images", ConfidenceMedium},
	"heic": {"Images", ConfidenceHigh},
	"heif": {"Images", ConfidenceHigh},
	"tiff": {"Images", ConfidenceHigh},
	"tif":  {"Images", ConfidenceHigh},
	"ico":  {"Images", ConfidenceHigh},
	"raw":  {"Images", ConfidenceHigh},
	"cr2":  {"Images", ConfidenceHigh},
	"nef":  {"Images", ConfidenceHigh},
	// Videos
	"mp4":  {"Videos", ConfidenceHigh},
	"mov":  {"Videos", ConfidenceHigh},
	"avi":  {"Videos", ConfidenceHigh},
	"mkv":  {"Videos", ConfidenceHigh},
	"wmv":  {"Videos", ConfidenceHigh},
	"webm": {"Videos", ConfidenceHigh},
	"m4v":  {"Videos", ConfidenceHigh},
	"flv":  {"Videos", ConfidenceHigh},
	// Audio
	"mp3":  {"Audio", ConfidenceHigh},
	"wav":  {"Audio", ConfidenceHigh},
	"flac": {"Audio", ConfidenceHigh},
	"aac":  {"Audio", ConfidenceHigh},
	"ogg":  {"Audio", ConfidenceHigh},
	"m4a":  {"Audio", ConfidenceHigh},
	"wma":  {"Audio", ConfidenceHigh},
	"aiff": {"Audio", ConfidenceHigh},
	// Archives; zip-likes stay medium since they may hold books
	"zip": {"Archives", ConfidenceMedium},
	"rar": {"Archives", ConfidenceMedium},
	"7z":  {"Archives", ConfidenceMedium},
	"tar": {"Archives", ConfidenceHigh},
	"gz":  {"Archives", ConfidenceHigh},
	"bz2": {"Archives", ConfidenceHigh},
	"xz":  {"Archives", ConfidenceHigh},
	"tgz": {"Archives", ConfidenceHigh},
	// Code
	"py":    {"Code", ConfidenceHigh},
	"js":    {"Code", ConfidenceHigh},
	"ts":    {"Code", ConfidenceHigh},
	"java":  {"Code", ConfidenceHigh},
	"c":     {"Code", ConfidenceHigh},
	"cpp":   {"Code", ConfidenceHigh},
	"h":     {"Code", ConfidenceHigh},
	"go":    {"Code", ConfidenceHigh},
	"rs":    {"Code", ConfidenceHigh},
	"rb":    {"Code", ConfidenceHigh},
	"php":   {"Code", ConfidenceHigh},
	"swift": {"Code", ConfidenceHigh},
	"kt":    {"Code", ConfidenceHigh},
	"html":  {"Code", ConfidenceMedium},
	"css":   {"Code", ConfidenceMedium},
	"scss":  {"Code", ConfidenceMedium},
	"sh":    {"Code", ConfidenceHigh},
	"bash":  {"Code", ConfidenceHigh},
	// Books
	"epub": {"Books", ConfidenceHigh},
	"mobi": {"Books", ConfidenceHigh},
	"azw":  {"Books", ConfidenceHigh},
	"azw3": {"Books", ConfidenceHigh},
	"fb2":  {"Books", ConfidenceHigh},
	// Data
	"csv":     {"Data", ConfidenceHigh},
	"json":    {"Data", ConfidenceMedium},
	"xml":     {"Data", ConfidenceMedium},
	"yaml":    {"Data", ConfidenceMedium},
	"yml":     {"Data", ConfidenceMedium},
	"sql":     {"Data", ConfidenceHigh},
	"db":      {"Data", ConfidenceHigh},
	"sqlite":  {"Data", ConfidenceHigh},
	"sqlite3": {"Data", ConfidenceHigh},
}

// ExtensionDetector is the generic fallback: it maps known extensions
// to categories and votes Unsorted at low confidence for everything
// else, so files without better evidence still resolve.
type ExtensionDetector struct{}

func NewExtensionDetector() *ExtensionDetector { return &ExtensionDetector{} }

func (*ExtensionDetector) ID() string    { return "extension" }
func (*ExtensionDetector) Priority() int { return 50 }

func (d *ExtensionDetector) Detect(fd scan.FileDescriptor, _ Excerpter) (Vote, bool) {
	if entry, ok := extensionMap[fd.Extension]; ok {
		return Vote{
			Category:   entry.category,
			Confidence: entry.confidence,
			Detector:   d.ID(),
			Rationale:  fmt.Sprintf("extension .%s", fd.Extension),
		}, true
	}
	rationale := "no file extension"
	if fd.Extension != "" {
		rationale = fmt.Sprintf("unknown extension .%s", fd.Extension)
	}
	return Vote{
		Category:   catalog.UnsortedCategory,
		Confidence: 0.3,
		Detector:   d.ID(),
		Rationale:  rationale,
	}, true
}
