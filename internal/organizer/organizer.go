// Package organizer keeps the column model, the layout and the directory slots
// on disk consistent with each other.
//
// Every mutation touches the file system first and the model second. When the
// model step fails the file operation is reverted, so a failed operation never
// leaves the two disagreeing.
package organizer

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/drag"
	"github.com/justyntemme/imgsort/internal/fs"
	"github.com/justyntemme/imgsort/internal/grid"
	"github.com/justyntemme/imgsort/internal/model"
	"github.com/justyntemme/imgsort/internal/thumb"
)

// Slot is one configured directory, shown as one column.
type Slot struct {
	Path  string
	Label string
}

// OrderStore persists the display order of each directory.
type OrderStore interface {
	LoadOrder(dir string) (map[string]int, error)
	SaveOrder(dir string, names []string) error
}

// Options configures an Organizer.
type Options struct {
	Geometry      grid.Geometry
	ThumbnailSize int
	Store         OrderStore // nil disables order persistence
}

// Result describes what a Move, Delete or Drop did.
type Result struct {
	Entry model.Entry
	From  model.Location
	To    model.Location // unset for deletes
	// Moved lists every handle whose slot position changed.
	Moved  []model.Handle
	Bounds image.Rectangle
	Noop   bool
	// StoreErr is set when the operation succeeded but the new order was not persisted.
	StoreErr error
}

// Drift is the difference between a slot on disk and its column.
type Drift struct {
	Missing []string // in the column, gone from disk
	Unknown []string // on disk, not in the column
}

// Empty reports whether disk and column agree.
func (d Drift) Empty() bool {
	return len(d.Missing) == 0 && len(d.Unknown) == 0
}

func (d Drift) String() string {
	var parts []string
	if n := len(d.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", n))
	}
	if n := len(d.Unknown); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new", n))
	}
	if len(parts) == 0 {
		return "in sync"
	}
	return strings.Join(parts, ", ")
}

// Organizer owns the board, its layout and the thumbnails.
type Organizer struct {
	slots   []Slot
	keys    []string // absolute slot paths, used as store keys
	opts    Options
	loader  *fs.Loader
	mutator *fs.Mutator

	board   *model.Board
	engine  *grid.Engine
	thumbs  map[model.Handle]*image.RGBA
	skipped [][]*fs.DecodeError
}

// New creates an Organizer for the given slots. Call Open to populate it.
func New(slots []Slot, opts Options) *Organizer {
	if opts.ThumbnailSize <= 0 {
		opts.ThumbnailSize = opts.Geometry.ColumnWidth
	}
	o := &Organizer{
		slots:   append([]Slot(nil), slots...),
		keys:    make([]string, len(slots)),
		opts:    opts,
		loader:  fs.NewLoader(),
		mutator: fs.NewMutator(),
		board:   model.NewBoard(len(slots)),
		engine:  grid.NewEngine(opts.Geometry),
		thumbs:  make(map[model.Handle]*image.RGBA),
		skipped: make([][]*fs.DecodeError, len(slots)),
	}
	for i, s := range slots {
		key, err := filepath.Abs(s.Path)
		if err != nil {
			key = filepath.Clean(s.Path)
		}
		o.keys[i] = key
	}
	return o
}

// Open scans every slot, renders thumbnails and lays out the board.
// Stored order wins; files the store does not know are appended by name.
func (o *Organizer) Open() error {
	board := model.NewBoard(len(o.slots))
	thumbs := make(map[model.Handle]*image.RGBA)
	skipped := make([][]*fs.DecodeError, len(o.slots))

	for c, s := range o.slots {
		res, err := o.loader.Scan(s.Path)
		if err != nil {
			return fmt.Errorf("open column %d: %w", c, err)
		}
		skipped[c] = res.Skipped

		for _, img := range o.applyOrder(c, res.Images) {
			h := model.NewHandle()
			if _, err := board.Insert(c, board.Len(c), model.Entry{Name: img.Name, Handle: h}); err != nil {
				return fmt.Errorf("open column %d: %w", c, err)
			}
			thumbs[h] = thumb.Render(img.Image, o.opts.ThumbnailSize)
		}
	}

	o.board = board
	o.thumbs = thumbs
	o.skipped = skipped
	o.engine = grid.NewEngine(o.opts.Geometry)
	o.engine.ReflowAll(o.board)

	for c := range o.slots {
		o.saveOrder(c)
	}
	log.Printf("Opened %d columns with %d images", len(o.slots), o.board.Total())
	return nil
}

// applyOrder sorts images by their stored position. Unknown names follow, by name.
func (o *Organizer) applyOrder(c int, images []fs.Image) []fs.Image {
	if o.opts.Store == nil {
		return images
	}
	order, err := o.opts.Store.LoadOrder(o.keys[c])
	if err != nil {
		log.Printf("Store: failed to load order for %s: %v", o.slots[c].Path, err)
		return images
	}
	sort.SliceStable(images, func(i, j int) bool {
		pi, ki := order[images[i].Name]
		pj, kj := order[images[j].Name]
		switch {
		case ki && kj:
			return pi < pj
		case ki != kj:
			return ki
		default:
			return images[i].Name < images[j].Name
		}
	})
	return images
}

func (o *Organizer) saveOrder(c int) error {
	if o.opts.Store == nil {
		return nil
	}
	if err := o.opts.Store.SaveOrder(o.keys[c], o.board.Names(c)); err != nil {
		log.Printf("Store: failed to save order for %s: %v", o.slots[c].Path, err)
		return err
	}
	return nil
}

// Move relocates the entry to the end of the target column, file first.
// Moving within the same column is a no-op.
func (o *Organizer) Move(h model.Handle, target int) (Result, error) {
	from, ok := o.board.IndexOf(h)
	if !ok {
		return Result{}, fmt.Errorf("move %s: %w", h, model.ErrNotFound)
	}
	entry, _ := o.board.Entry(from.Column, from.Position)
	res := Result{Entry: entry, From: from, To: from, Bounds: o.Bounds()}

	if target < 0 || target >= o.board.Columns() {
		return res, fmt.Errorf("move %q to column %d: %w", entry.Name, target, model.ErrColumnRange)
	}
	if target == from.Column {
		res.Noop = true
		return res, nil
	}

	src, dst := o.slots[from.Column].Path, o.slots[target].Path
	if err := o.mutator.Move(src, dst, entry.Name); err != nil {
		log.Printf("Move: %q from %s to %s failed: %v", entry.Name, src, dst, err)
		return res, err
	}

	removed, err := o.board.Remove(from.Column, h)
	if err != nil {
		o.revertMove(dst, src, entry.Name)
		return res, err
	}
	pos, err := o.board.Insert(target, o.board.Len(target), entry)
	if err != nil {
		if _, restoreErr := o.board.Insert(from.Column, removed, entry); restoreErr != nil {
			log.Printf("Move: failed to restore %q in column %d: %v", entry.Name, from.Column, restoreErr)
		}
		o.revertMove(dst, src, entry.Name)
		return res, err
	}

	res.To = model.Location{Column: target, Position: pos}
	res.Moved = append(o.engine.Reflow(o.board, from.Column, removed), o.engine.Reflow(o.board, target, pos)...)
	res.Bounds = o.Bounds()
	res.StoreErr = errors.Join(o.saveOrder(from.Column), o.saveOrder(target))

	debug.Log(debug.APP, "move %q %d:%d -> %d:%d, %d repositioned", entry.Name,
		from.Column, from.Position, res.To.Column, res.To.Position, len(res.Moved))
	return res, nil
}

func (o *Organizer) revertMove(srcDir, dstDir, name string) {
	if err := o.mutator.Move(srcDir, dstDir, name); err != nil {
		log.Printf("Move: failed to revert %q back to %s: %v", name, dstDir, err)
	}
}

// Delete removes the file and its entry. If the file is already gone the
// entry is removed anyway and the fs.ErrNotFound error is still returned.
func (o *Organizer) Delete(h model.Handle) (Result, error) {
	loc, ok := o.board.IndexOf(h)
	if !ok {
		return Result{}, fmt.Errorf("delete %s: %w", h, model.ErrNotFound)
	}
	entry, _ := o.board.Entry(loc.Column, loc.Position)
	res := Result{Entry: entry, From: loc, Bounds: o.Bounds()}

	fileErr := o.mutator.Delete(o.slots[loc.Column].Path, entry.Name)
	if fileErr != nil && !errors.Is(fileErr, fs.ErrNotFound) {
		log.Printf("Delete: %q failed: %v", entry.Name, fileErr)
		return res, fileErr
	}
	if fileErr != nil {
		log.Printf("Delete: %q was already gone, dropping it from column %d", entry.Name, loc.Column)
	}

	pos, err := o.board.Remove(loc.Column, h)
	if err != nil {
		return res, err
	}
	delete(o.thumbs, h)
	o.engine.Forget(h)

	res.Moved = o.engine.Reflow(o.board, loc.Column, pos)
	res.Bounds = o.Bounds()
	res.StoreErr = o.saveOrder(loc.Column)
	return res, fileErr
}

// Drop applies a finished drag gesture.
func (o *Organizer) Drop(out drag.Outcome) (Result, error) {
	if out.Kind == drag.Dropped {
		return o.Move(out.Handle, out.Target)
	}
	res := Result{Noop: true, From: out.Source, To: out.Source, Bounds: o.Bounds()}
	if entry, ok := o.board.Entry(out.Source.Column, out.Source.Position); ok {
		res.Entry = entry
	}
	return res, nil
}

// Verify compares slot c on disk with its column. Files that failed to
// decode at Open are not reported as unknown.
func (o *Organizer) Verify(c int) (Drift, error) {
	if c < 0 || c >= len(o.slots) {
		return Drift{}, fmt.Errorf("verify column %d: %w", c, model.ErrColumnRange)
	}
	names, err := o.loader.List(o.slots[c].Path)
	if err != nil {
		return Drift{}, fmt.Errorf("verify column %d: %w", c, err)
	}

	onDisk := make(map[string]bool, len(names))
	for _, n := range names {
		onDisk[n] = true
	}
	known := make(map[string]bool)
	for _, skip := range o.skipped[c] {
		known[skip.Name] = true
	}

	var drift Drift
	for _, n := range o.board.Names(c) {
		known[n] = true
		if !onDisk[n] {
			drift.Missing = append(drift.Missing, n)
		}
	}
	for _, n := range names {
		if !known[n] {
			drift.Unknown = append(drift.Unknown, n)
		}
	}
	sort.Strings(drift.Missing)
	return drift, nil
}

// ColumnFor returns the column whose slot is dir.
func (o *Organizer) ColumnFor(dir string) (int, bool) {
	key, err := filepath.Abs(dir)
	if err != nil {
		key = filepath.Clean(dir)
	}
	for c, k := range o.keys {
		if k == key {
			return c, true
		}
	}
	return 0, false
}

// Slots returns the configured slots.
func (o *Organizer) Slots() []Slot {
	return append([]Slot(nil), o.slots...)
}

func (o *Organizer) Columns() int {
	return o.board.Columns()
}

func (o *Organizer) Total() int {
	return o.board.Total()
}

// Entries returns column c in display order.
func (o *Organizer) Entries(c int) []model.Entry {
	return o.board.Entries(c)
}

func (o *Organizer) Location(h model.Handle) (model.Location, bool) {
	return o.board.IndexOf(h)
}

// Position returns the computed slot position of h in dp.
func (o *Organizer) Position(h model.Handle) (image.Point, bool) {
	return o.engine.Position(h)
}

// Path returns the file path currently backing h.
func (o *Organizer) Path(h model.Handle) (string, bool) {
	loc, ok := o.board.IndexOf(h)
	if !ok {
		return "", false
	}
	entry, _ := o.board.Entry(loc.Column, loc.Position)
	return filepath.Join(o.slots[loc.Column].Path, entry.Name), true
}

func (o *Organizer) Thumbnail(h model.Handle) *image.RGBA {
	return o.thumbs[h]
}

// Bounds returns the current scroll region.
func (o *Organizer) Bounds() image.Rectangle {
	return o.engine.Bounds(o.board)
}

func (o *Organizer) Geometry() grid.Geometry {
	return o.opts.Geometry
}

// Skipped returns every file that failed to decode at Open.
func (o *Organizer) Skipped() []*fs.DecodeError {
	var all []*fs.DecodeError
	for _, s := range o.skipped {
		all = append(all, s...)
	}
	return all
}
