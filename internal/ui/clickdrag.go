package ui

import (
	"image"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// DragEventKind is what a Draggable reports for one pointer event.
type DragEventKind int

const (
	DragPress DragEventKind = iota
	DragMove
	DragRelease
	DragCancel
)

// DragEvent carries a pointer position relative to the hit area, in pixels.
type DragEvent struct {
	Kind     DragEventKind
	Position f32.Point
}

// Draggable wraps gesture.Drag for a card's thumbnail area.
//
// The hit area stays at the card's slot while the card itself is drawn at the
// drag position, so positions are always relative to the slot. gesture.Drag
// has a built-in movement threshold before it reports Drag events, so a plain
// click produces Press then Release at the same spot.
type Draggable struct {
	drag gesture.Drag
	pid  pointer.ID
}

// Update returns the pending pointer events for the hit area, oldest first.
// Events come from the hit area registered in the previous frame.
func (d *Draggable) Update(gtx layout.Context) []DragEvent {
	var out []DragEvent
	for {
		e, ok := d.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			d.pid = e.PointerID
			out = append(out, DragEvent{Kind: DragPress, Position: e.Position})
		case pointer.Drag:
			if e.PointerID == d.pid {
				out = append(out, DragEvent{Kind: DragMove, Position: e.Position})
			}
		case pointer.Release:
			if e.PointerID == d.pid {
				out = append(out, DragEvent{Kind: DragRelease, Position: e.Position})
			}
		case pointer.Cancel:
			out = append(out, DragEvent{Kind: DragCancel, Position: e.Position})
		}
	}
	return out
}

// Add registers the hit area of the given size at the current offset.
func (d *Draggable) Add(gtx layout.Context, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	pointer.CursorGrab.Add(gtx.Ops)
	d.drag.Add(gtx.Ops)
}

// DeferAt draws w on top of everything else, offset by off pixels from the
// current position.
func DeferAt(gtx layout.Context, off image.Point, w layout.Widget) {
	rec := op.Record(gtx.Ops)
	op.Offset(off).Add(gtx.Ops)
	w(gtx)
	op.Defer(gtx.Ops, rec.Stop())
}
