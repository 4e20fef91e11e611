package extract

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ImageDate reads the capture timestamp from an image's EXIF block.
func ImageDate(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	taken, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return taken, true
}
