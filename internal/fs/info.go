package fs

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/justyntemme/imgsort/internal/debug"
)

// Info is what the enlarge view shows about a file.
type Info struct {
	Name       string
	Size       int64
	ModTime    time.Time
	Dimensions image.Point
	Taken      time.Time // EXIF capture time, zero if unknown
}

// Describe reads size, dimensions and, for JPEGs, the EXIF capture time.
func Describe(path string) (Info, error) {
	info := Info{Name: filepath.Base(path)}

	stat, err := os.Stat(path)
	if err != nil {
		return info, err
	}
	info.Size = stat.Size()
	info.ModTime = stat.ModTime()

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	if cfg, _, err := image.DecodeConfig(f); err == nil {
		info.Dimensions = image.Pt(cfg.Width, cfg.Height)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpg" || ext == ".jpeg" {
		if _, err := f.Seek(0, 0); err == nil {
			info.Taken = exifTime(f, path)
		}
	}
	return info, nil
}

func exifTime(f *os.File, path string) time.Time {
	x, err := exif.Decode(f)
	if err != nil {
		debug.Log(debug.FS, "Describe: no EXIF in %s: %v", path, err)
		return time.Time{}
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}
	}
	return t
}
