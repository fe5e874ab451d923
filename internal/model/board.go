// Package model holds the ordered image entries of every column.
//
// A Board is the single source of truth for display order. Pixel positions are
// derived from it by the grid package and never flow back.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justyntemme/imgsort/internal/debug"
)

var (
	// ErrNotFound is returned when a handle is not present in the given column.
	ErrNotFound = errors.New("entry not found")
	// ErrColumnRange is returned for a column index outside the board.
	ErrColumnRange = errors.New("column index out of range")
	// ErrDuplicateHandle is returned when inserting a handle that is already on the board.
	ErrDuplicateHandle = errors.New("handle already on board")
)

// Handle is an opaque reference to the visual state of one entry.
type Handle uuid.UUID

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Entry is one image file within a column.
type Entry struct {
	Name   string
	Handle Handle
}

// Location is the column index and stack position of an entry.
type Location struct {
	Column   int
	Position int
}

// Board is a fixed number of ordered columns plus a handle index.
type Board struct {
	columns [][]Entry
	index   map[Handle]Location
}

// NewBoard creates a board with n empty columns.
func NewBoard(n int) *Board {
	if n < 0 {
		n = 0
	}
	return &Board{
		columns: make([][]Entry, n),
		index:   make(map[Handle]Location),
	}
}

// Columns returns the number of columns.
func (b *Board) Columns() int {
	return len(b.columns)
}

// Len returns the number of entries in column c, or 0 if c is out of range.
func (b *Board) Len(c int) int {
	if !b.validColumn(c) {
		return 0
	}
	return len(b.columns[c])
}

// Total returns the number of entries across all columns.
func (b *Board) Total() int {
	return len(b.index)
}

// Tallest returns the length of the longest column.
func (b *Board) Tallest() int {
	tallest := 0
	for _, col := range b.columns {
		if len(col) > tallest {
			tallest = len(col)
		}
	}
	return tallest
}

// Entries returns a copy of column c.
func (b *Board) Entries(c int) []Entry {
	if !b.validColumn(c) {
		return nil
	}
	out := make([]Entry, len(b.columns[c]))
	copy(out, b.columns[c])
	return out
}

// Entry returns the entry at position i of column c.
func (b *Board) Entry(c, i int) (Entry, bool) {
	if !b.validColumn(c) || i < 0 || i >= len(b.columns[c]) {
		return Entry{}, false
	}
	return b.columns[c][i], true
}

// Names returns the file names of column c in display order.
func (b *Board) Names(c int) []string {
	if !b.validColumn(c) {
		return nil
	}
	names := make([]string, len(b.columns[c]))
	for i, e := range b.columns[c] {
		names[i] = e.Name
	}
	return names
}

// IndexOf returns where the handle currently lives.
func (b *Board) IndexOf(h Handle) (Location, bool) {
	loc, ok := b.index[h]
	return loc, ok
}

// Insert places e into column c at pos, clamped to [0, len(column)].
// It returns the position actually used.
func (b *Board) Insert(c, pos int, e Entry) (int, error) {
	if !b.validColumn(c) {
		return 0, fmt.Errorf("insert into column %d: %w", c, ErrColumnRange)
	}
	if _, exists := b.index[e.Handle]; exists {
		return 0, fmt.Errorf("insert %q: %w", e.Name, ErrDuplicateHandle)
	}

	col := b.columns[c]
	pos = max(0, min(pos, len(col)))

	col = append(col, Entry{})
	copy(col[pos+1:], col[pos:])
	col[pos] = e
	b.columns[c] = col

	b.reindex(c, pos)
	debug.Log(debug.MODEL, "insert %q into column %d at %d (len=%d)", e.Name, c, pos, len(col))
	return pos, nil
}

// Remove takes the handle out of column c and returns the position it held.
func (b *Board) Remove(c int, h Handle) (int, error) {
	if !b.validColumn(c) {
		return 0, fmt.Errorf("remove from column %d: %w", c, ErrColumnRange)
	}
	loc, ok := b.index[h]
	if !ok || loc.Column != c {
		return 0, fmt.Errorf("remove %s from column %d: %w", h, c, ErrNotFound)
	}

	col := b.columns[c]
	name := col[loc.Position].Name
	copy(col[loc.Position:], col[loc.Position+1:])
	col[len(col)-1] = Entry{}
	b.columns[c] = col[:len(col)-1]

	delete(b.index, h)
	b.reindex(c, loc.Position)
	debug.Log(debug.MODEL, "remove %q from column %d at %d (len=%d)", name, c, loc.Position, len(b.columns[c]))
	return loc.Position, nil
}

// reindex refreshes the index for every entry at or after from in column c.
func (b *Board) reindex(c, from int) {
	col := b.columns[c]
	for i := from; i < len(col); i++ {
		b.index[col[i].Handle] = Location{Column: c, Position: i}
	}
}

func (b *Board) validColumn(c int) bool {
	return c >= 0 && c < len(b.columns)
}
