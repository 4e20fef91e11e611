package config

const (
	defaultSourceDir      = "~/Downloads"
	defaultDestinationDir = "~/Documents/Organized"
	defaultLogDir         = "~/.local/share/tidy/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultThreshold      = 0.7
	defaultMaxNameLength  = 200
)

// defaultCategories lists the registry in order; position determines the
// numbered destination folder (01_Documents, 02_Screenshots, ...). Unsorted
// is implicit and always pinned at 99.
var defaultCategories = []string{
	"Documents",
	"Screenshots",
	"Images",
	"Videos",
	"Audio",
	"Archives",
	"Code",
	"Books",
	"Papers",
	"Data",
	"Installers",
}

// defaultSkipPatterns are never processed regardless of user configuration.
var defaultSkipPatterns = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	"*.tmp",
	"*.temp",
	"*.crdownload",
	"*.part",
	"*.download",
	"*.swp",
	"*~",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:      defaultSourceDir,
			DestinationDir: defaultDestinationDir,
			LogDir:         defaultLogDir,
		},
		Discovery: Discovery{
			SkipHidden: true,
		},
		Detection: Detection{
			ConfidenceThreshold: defaultThreshold,
		},
		Rename: Rename{
			MaxNameLength: defaultMaxNameLength,
		},
		Categories: append([]string{}, defaultCategories...),
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}

// DefaultSkipPatterns returns the built-in discovery exclusions.
func DefaultSkipPatterns() []string {
	return append([]string{}, defaultSkipPatterns...)
}
