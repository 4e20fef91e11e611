package detect

import (
	"fmt"

	"tidy/internal/scan"
)

// Installer formats across macOS, Windows, and Linux.
var installerExtensions = map[string]struct{}{
	"dmg": {}, "pkg": {}, "app": {},
	"exe": {}, "msi": {}, "msix": {},
	"deb": {}, "rpm": {}, "appimage": {}, "flatpak": {}, "snap": {},
}

// InstallerDetector classifies installers purely by extension.
type InstallerDetector struct{}

func NewInstallerDetector() *InstallerDetector { return &InstallerDetector{} }

func (*InstallerDetector) ID() string    { return "installer" }
func (*InstallerDetector) Priority() int { return 15 }

func (d *InstallerDetector) Detect(fd scan.FileDescriptor, _ Excerpter) (Vote, bool) {
	if _, ok := installerExtensions[fd.Extension]; !ok {
		return Vote{}, false
	}
	return Vote{
		Category:   "Installers",
		Confidence: ConfidenceHigh,
		Detector:   d.ID(),
		Rationale:  fmt.Sprintf("installer format (.%s)", fd.Extension),
	}, true
}
