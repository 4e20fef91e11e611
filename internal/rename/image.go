package rename

import (
	"fmt"

	"tidy/internal/detect"
	"tidy/internal/scan"
)

// Formats that can carry EXIF.
var exifExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "tiff": {}, "tif": {}, "heic": {}, "heif": {},
}

// ImageRenamer names photos {exif_date}_{original stem}.{ext}, falling
// back to the modified date when no EXIF timestamp exists. Fires only
// on auto-generated looking names.
type ImageRenamer struct {
	maxName int
}

func NewImageRenamer(maxName int) *ImageRenamer {
	return &ImageRenamer{maxName: maxName}
}

func (*ImageRenamer) ID() string { return "image" }

func (r *ImageRenamer) Rename(fd scan.FileDescriptor, _ detect.Resolution, src Source) (Outcome, bool) {
	if _, ok := exifExtensions[fd.Extension]; !ok {
		return Outcome{}, false
	}
	if !IsUgly(fd.Stem()) {
		return Outcome{}, false
	}

	date := fd.Modified
	if taken, ok := src.ImageDate(fd.Path); ok {
		date = taken
	}

	stem := Sanitize(fd.Stem(), r.maxName)
	if len(stem) < 3 {
		stem = fmt.Sprintf("%s_image", FormatDate(date))
	} else {
		stem = fmt.Sprintf("%s_%s", FormatDate(date), stem)
	}

	newName := fmt.Sprintf("%s.%s", stem, fd.Extension)
	if newName == fd.Name {
		return Outcome{}, false
	}
	return Outcome{NewName: newName, Renamer: r.ID(), Date: date}, true
}
