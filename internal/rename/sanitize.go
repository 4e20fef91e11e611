package rename

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxNameLength caps generated file names, extension excluded.
const DefaultMaxNameLength = 200

var (
	forbiddenChars = regexp.MustCompile(`[\\/:*?"<>|\x00]`)
	runsOfFiller   = regexp.MustCompile(`[\s_]+`)
)

// Sanitize makes a string safe as a filename on the major platforms:
// unicode normalized, forbidden characters replaced, whitespace and
// underscores collapsed, leading dots stripped, length capped.
func Sanitize(name string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxNameLength
	}
	if name == "" {
		return "unnamed"
	}
	name = norm.NFKC.String(name)
	name = forbiddenChars.ReplaceAllString(name, "_")
	name = runsOfFiller.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, ".")
	if len(name) > maxLength {
		name = strings.TrimRight(name[:maxLength], " ")
	}
	if name == "" {
		return "unnamed"
	}
	return name
}

var (
	uuidStem    = regexp.MustCompile(`^[a-f0-9]{8}(-[a-f0-9]{4}){3}-[a-f0-9]{12}$`)
	hexDashStem = regexp.MustCompile(`^[a-f0-9]{2,}(-[a-f0-9]{2,}){3,}$`)
	hexStem     = regexp.MustCompile(`^[a-f0-9]{16,}$`)
)

// IsUgly reports whether a filename stem looks auto-generated:
// timestamps, UUIDs, long hex hashes. Such names are worth replacing;
// human-chosen names are left alone by the opportunistic renamers.
func IsUgly(stem string) bool {
	if stem == "" {
		return true
	}
	digits := 0
	for _, r := range stem {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if float64(digits)/float64(len([]rune(stem))) > 0.7 {
		return true
	}
	lower := strings.ToLower(stem)
	return uuidStem.MatchString(lower) || hexDashStem.MatchString(lower) || hexStem.MatchString(lower)
}

// FormatDate renders the date component used in generated names.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime renders the timestamp component used for screenshots.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02_15-04-05")
}
