package fs

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/justyntemme/imgsort/internal/debug"
)

// supportedExts are the image extensions a directory slot may hold.
var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// IsSupported reports whether name has a supported image extension (case-insensitive).
func IsSupported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// Image is one decoded file from a scan.
type Image struct {
	Name    string
	Path    string
	Image   image.Image
	Size    int64
	ModTime time.Time
}

// DecodeError records a file that was skipped during a scan.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ScanResult is what a directory scan produced.
type ScanResult struct {
	Images  []Image
	Skipped []*DecodeError
}

// Loader scans directory slots for images.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// List returns the names of supported image files directly inside dir, sorted.
func (l *Loader) List(dir string) ([]string, error) {
	root := filepath.Clean(dir)
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	var names []string
	var mu sync.Mutex

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS, "List: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == root {
			return nil
		}
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		if !IsSupported(d.Name()) {
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks count only when they point at a regular file.
			info, err := fastwalk.StatDirEntry(fullPath, d)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
		}

		mu.Lock()
		names = append(names, d.Name())
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Scan decodes every supported image in dir. Unreadable or corrupt files are
// logged and skipped; only a missing or unreadable directory is an error.
func (l *Loader) Scan(dir string) (ScanResult, error) {
	var result ScanResult

	names, err := l.List(dir)
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", dir, err)
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		img, info, err := decodeFile(path)
		if err != nil {
			skip := &DecodeError{Name: name, Err: err}
			log.Printf("Scan: skipping %s in %s: %v", name, dir, err)
			result.Skipped = append(result.Skipped, skip)
			continue
		}
		result.Images = append(result.Images, Image{
			Name:    name,
			Path:    path,
			Image:   img,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	debug.Log(debug.FS, "Scan %q: %d images, %d skipped", dir, len(result.Images), len(result.Skipped))
	return result, nil
}

// DecodeFile decodes a single image file at full resolution.
func DecodeFile(path string) (image.Image, error) {
	img, _, err := decodeFile(path)
	return img, err
}

func decodeFile(path string) (image.Image, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, err
	}
	return img, info, nil
}
