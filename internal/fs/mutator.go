package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/justyntemme/imgsort/internal/debug"
)

var (
	// ErrConflict is returned when a move would overwrite an existing file.
	ErrConflict = errors.New("destination already exists")
	// ErrNotFound is returned when the file to move or delete is gone.
	ErrNotFound = errors.New("file not found")
)

// OpError describes a failed move or delete.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Mutator moves and deletes image files inside directory slots.
type Mutator struct{}

// NewMutator creates a Mutator.
func NewMutator() *Mutator {
	return &Mutator{}
}

// Move relocates name from srcDir to dstDir. It never overwrites: an existing
// destination fails with ErrConflict and leaves both files untouched.
func (m *Mutator) Move(srcDir, dstDir, name string) error {
	if err := checkName(name); err != nil {
		return &OpError{Op: "move", Path: name, Err: err}
	}
	src := filepath.Join(srcDir, name)
	dst := filepath.Join(dstDir, name)

	if _, err := os.Lstat(src); err != nil {
		return &OpError{Op: "move", Path: src, Err: classify(err)}
	}
	if _, err := os.Lstat(dst); err == nil {
		return &OpError{Op: "move", Path: dst, Err: ErrConflict}
	}

	if err := moveFile(src, dst); err != nil {
		return &OpError{Op: "move", Path: src, Err: classify(err)}
	}

	log.Printf("Moved %s to %s", src, dst)
	return nil
}

// Delete removes name from dir.
func (m *Mutator) Delete(dir, name string) error {
	if err := checkName(name); err != nil {
		return &OpError{Op: "delete", Path: name, Err: err}
	}
	path := filepath.Join(dir, name)
	if err := os.Remove(path); err != nil {
		return &OpError{Op: "delete", Path: path, Err: classify(err)}
	}
	log.Printf("Deleted %s", path)
	return nil
}

// linkFile is swapped in tests to mimic filesystems without hard links.
var linkFile = os.Link

// moveFile links dst to src and unlinks src, which fails rather than replaces
// when dst appeared after the Lstat check. When linking is impossible, either
// across devices or on filesystems without hard links, it falls back to an
// exclusive copy, which fails the same way.
func moveFile(src, dst string) error {
	err := linkFile(src, dst)
	if err == nil {
		return removeSource(src, dst)
	}
	if errors.Is(err, iofs.ErrExist) {
		return err
	}
	if errors.Is(err, syscall.EXDEV) {
		debug.Log(debug.FS, "moveFile: cross-device, copying %s to %s", src, dst)
	} else {
		debug.Log(debug.FS, "moveFile: link unsupported (%v), copying %s to %s", err, src, dst)
	}
	return copyAndRemove(src, dst)
}

func copyAndRemove(src, dst string) error {
	if err := copyExclusive(src, dst); err != nil {
		return err
	}
	return removeSource(src, dst)
}

// removeSource finishes a link or copy; if src cannot be removed the new dst is
// dropped so the file exists in exactly one place.
func removeSource(src, dst string) error {
	if err := os.Remove(src); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

// copyExclusive copies src to a newly created dst, removing dst on failure.
func copyExclusive(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dstFile.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return dstFile.Sync()
}

// classify maps os errors onto the package sentinels, keeping the cause.
func classify(err error) error {
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, iofs.ErrExist):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
