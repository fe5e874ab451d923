package grid

import (
	"image"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/model"
)

// Engine remembers the last position assigned to each handle so callers can
// tell which cards actually moved after a structural change.
type Engine struct {
	geom Geometry
	pos  map[model.Handle]image.Point
}

// NewEngine creates a layout engine for the given geometry.
func NewEngine(g Geometry) *Engine {
	return &Engine{
		geom: g,
		pos:  make(map[model.Handle]image.Point),
	}
}

// Geometry returns the constants the engine lays out with.
func (e *Engine) Geometry() Geometry {
	return e.geom
}

// Position returns the last position assigned to h.
func (e *Engine) Position(h model.Handle) (image.Point, bool) {
	p, ok := e.pos[h]
	return p, ok
}

// Reflow assigns slot positions to every entry at or after from in column c.
// It returns the handles whose position changed; an already placed entry is left alone.
func (e *Engine) Reflow(b *model.Board, c, from int) []model.Handle {
	var moved []model.Handle
	entries := b.Entries(c)
	for i := max(from, 0); i < len(entries); i++ {
		h := entries[i].Handle
		want := e.geom.Slot(c, i)
		if have, ok := e.pos[h]; ok && have == want {
			continue
		}
		e.pos[h] = want
		moved = append(moved, h)
	}
	debug.Log(debug.LAYOUT, "reflow column %d from %d: %d repositioned", c, from, len(moved))
	return moved
}

// ReflowAll lays out every column from the top.
func (e *Engine) ReflowAll(b *model.Board) []model.Handle {
	var moved []model.Handle
	for c := 0; c < b.Columns(); c++ {
		moved = append(moved, e.Reflow(b, c, 0)...)
	}
	return moved
}

// Forget drops a handle that has left the board.
func (e *Engine) Forget(h model.Handle) {
	delete(e.pos, h)
}

// Bounds returns the scroll region covering every column and the tallest stack.
func (e *Engine) Bounds(b *model.Board) image.Rectangle {
	return e.geom.Bounds(b.Columns(), b.Tallest())
}
