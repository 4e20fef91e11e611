package rename

import (
	"fmt"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

// GenericRenamer is the fallback: {date}_{sanitized stem}.{ext}. It
// only fires on auto-generated looking names, leaving human-chosen
// filenames untouched.
type GenericRenamer struct {
	maxName int
}

func NewGenericRenamer(maxName int) *GenericRenamer {
	return &GenericRenamer{maxName: maxName}
}

func (*GenericRenamer) ID() string { return "generic" }

func (r *GenericRenamer) Rename(fd scan.FileDescriptor, _ detect.Resolution, _ Source) (Outcome, bool) {
	if !IsUgly(fd.Stem()) {
		return Outcome{}, false
	}

	date := FormatDate(fd.Modified)
	stem := Sanitize(fd.Stem(), r.maxName)
	if len(stem) < 3 {
		stem = fmt.Sprintf("%s_file", date)
	} else {
		stem = fmt.Sprintf("%s_%s", date, stem)
	}

	newName := stem
	if fd.Extension != "" {
		newName = fmt.Sprintf("%s.%s", stem, fd.Extension)
	}
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Date: fd.Modified}, true
}
