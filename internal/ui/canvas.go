package ui

import (
	"fmt"
	"image"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/grid"
)

// layoutCanvas draws the scrollable board: headers, separators and cards.
// Content coordinates are dp; the viewport offset is subtracted at draw time.
func (r *Renderer) layoutCanvas(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	size := gtx.Constraints.Max
	r.viewport.Resize(pointDp(gtx, float32(size.X), float32(size.Y)), state.Bounds)
	r.handleScroll(gtx, state.Bounds)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: colWhite}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	event.Op(gtx.Ops, &r.canvasTag)

	scroll := op.Offset(pointPx(gtx, r.viewport.Offset).Mul(-1)).Push(gtx.Ops)
	r.layoutHeaders(gtx, state)
	for _, col := range state.Columns {
		for _, cv := range col.Cards {
			r.layoutCard(gtx, state, cv, eventOut)
		}
	}
	scroll.Pop()

	r.layoutScrollbar(gtx, state.Bounds)
	return layout.Dimensions{Size: size}
}

// layoutScrollbar draws the vertical scrollbar on the right edge while the
// tallest column overflows the window. Indicator drags and track clicks
// scroll the viewport.
func (r *Renderer) layoutScrollbar(gtx layout.Context, bounds image.Rectangle) {
	start, end := r.viewport.VerticalSpan(bounds)
	if start <= 0 && end >= 1 {
		return
	}
	layout.E.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.Scrollbar(r.Theme, &r.vbar).Layout(gtx, layout.Vertical, start, end)
	})

	if delta := r.vbar.ScrollDistance(); delta != 0 && r.viewport.ScrollByFraction(delta, bounds) {
		debug.Log(debug.UI_EVENT, "scrollbar %.3f -> offset %v", delta, r.viewport.Offset)
		gtx.Execute(op.InvalidateCmd{})
	}
}

// handleScroll applies wheel and trackpad scrolling. Shift turns a vertical
// wheel into horizontal scrolling.
func (r *Renderer) handleScroll(gtx layout.Context, bounds image.Rectangle) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &r.canvasTag,
			Kinds:   pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok || e.Kind != pointer.Scroll {
			continue
		}
		delta := pointDp(gtx, e.Scroll.X, e.Scroll.Y)
		if e.Modifiers.Contain(key.ModShift) && delta.X == 0 {
			delta.X, delta.Y = delta.Y, 0
		}
		if r.viewport.ScrollBy(delta, bounds) {
			debug.Log(debug.UI_EVENT, "scroll %v -> offset %v", delta, r.viewport.Offset)
		}
	}
}

// layoutHeaders draws the column labels and the black separators between columns.
func (r *Renderer) layoutHeaders(gtx layout.Context, state *State) {
	g := state.Geometry
	height := max(state.Bounds.Max.Y, r.viewport.Offset.Y+r.viewport.Size.Y)
	lineWidth := max(gtx.Dp(unit.Dp(1)), 1)

	for c, col := range state.Columns {
		x := c * g.ColumnPitch()

		st := op.Offset(pointPx(gtx, image.Pt(x, 0))).Push(gtx.Ops)
		hgtx := gtx
		hgtx.Constraints = layout.Exact(pointPx(gtx, image.Pt(g.ColumnWidth, g.HeaderOffset)))
		layout.Center.Layout(hgtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.H6(r.Theme, fmt.Sprintf("%s (%d)", col.Label, len(col.Cards)))
			lbl.Color = colBlack
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		})
		st.Pop()

		if c == 0 {
			continue
		}
		sep := pointPx(gtx, image.Pt(x-g.Gap/2, height))
		paint.FillShape(gtx.Ops, colBlack, clip.Rect{
			Min: image.Pt(sep.X, 0),
			Max: image.Pt(sep.X+lineWidth, sep.Y),
		}.Op())
	}
}

// layoutCard feeds the card's pointer events to the drag controller and draws it.
// While dragged, the hit area stays on the slot and the card follows the pointer on top.
func (r *Renderer) layoutCard(gtx layout.Context, state *State, cv CardView, eventOut *UIEvent) {
	c := r.cards[cv.Handle]
	if c == nil {
		return
	}
	g := state.Geometry
	origin := cv.Pos

	for _, ev := range c.drag.Update(gtx) {
		p := origin.Add(pointDp(gtx, ev.Position.X, ev.Position.Y))
		s, active := r.drag.Session()
		mine := active && s.Handle == cv.Handle

		switch ev.Kind {
		case DragPress:
			r.drag.Press(cv.Handle, cv.Location, origin, p)
		case DragMove:
			if mine {
				r.drag.Move(p)
				debug.Log(debug.UI_EVENT, "drag %q to %v", cv.Name, p)
			}
		case DragRelease:
			if mine {
				out := r.drag.Release(p, r.viewport.Offset, g.ColumnWidth, g, len(state.Columns))
				*eventOut = UIEvent{Action: ActionDrop, Handle: cv.Handle, Outcome: out}
			}
		case DragCancel:
			if mine {
				r.drag.Cancel()
			}
		}
	}

	if c.deleteBtn.Clicked(gtx) {
		if state.ConfirmDelete {
			r.openDeleteConfirm(cv)
		} else {
			*eventOut = UIEvent{Action: ActionDelete, Handle: cv.Handle}
		}
	}
	if c.enlargeBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionEnlarge, Handle: cv.Handle}
	}

	s, active := r.drag.Session()
	dragging := active && s.Handle == cv.Handle
	slot := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(g.ColumnWidth, g.SlotHeight))}
	if !dragging && !r.viewport.Visible(slot) {
		return
	}

	thumbArea := pointPx(gtx, image.Pt(g.ColumnWidth, g.ColumnWidth))
	st := op.Offset(pointPx(gtx, origin)).Push(gtx.Ops)
	if dragging {
		paint.FillShape(gtx.Ops, colPlaceholder, clip.Rect{Max: pointPx(gtx, slot.Size())}.Op())
		c.drag.Add(gtx, thumbArea)
		DeferAt(gtx, pointPx(gtx, s.Current.Sub(origin)), func(gtx layout.Context) layout.Dimensions {
			return r.drawCard(gtx, g, cv, c, false)
		})
		gtx.Execute(op.InvalidateCmd{})
	} else {
		r.drawCard(gtx, g, cv, c, true)
		c.drag.Add(gtx, thumbArea)
	}
	st.Pop()
}

// drawCard draws the thumbnail and, below it, the name and the card controls.
func (r *Renderer) drawCard(gtx layout.Context, g grid.Geometry, cv CardView, c *card, controls bool) layout.Dimensions {
	slotPx := pointPx(gtx, image.Pt(g.ColumnWidth, g.SlotHeight))
	thumbPx := pointPx(gtx, image.Pt(g.ColumnWidth, g.ColumnWidth))

	if !controls {
		// Lifted card
		paint.FillShape(gtx.Ops, colShadow, clip.Rect{Min: image.Pt(4, 4), Max: slotPx.Add(image.Pt(4, 4))}.Op())
	}
	paint.FillShape(gtx.Ops, colCard, clip.Rect{Max: slotPx}.Op())
	paint.FillShape(gtx.Ops, colCardBorder, clip.Stroke{
		Path:  clip.Rect{Max: slotPx}.Path(),
		Width: float32(max(gtx.Dp(unit.Dp(1)), 1)),
	}.Op())

	if c.thumb != nil {
		tgtx := gtx
		tgtx.Constraints = layout.Exact(thumbPx)
		widget.Image{Src: c.imageOp, Fit: widget.Contain, Position: layout.Center}.Layout(tgtx)
	}

	strip := op.Offset(image.Pt(0, thumbPx.Y)).Push(gtx.Ops)
	sgtx := gtx
	sgtx.Constraints = layout.Constraints{Max: image.Pt(slotPx.X, slotPx.Y-thumbPx.Y)}
	layout.UniformInset(unit.Dp(4)).Layout(sgtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, cv.Name)
				lbl.Color = colGray
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if !controls {
					return layout.Dimensions{}
				}
				return r.layoutCardControls(gtx, c)
			}),
		)
	})
	strip.Pop()

	return layout.Dimensions{Size: slotPx}
}

func (r *Renderer) layoutCardControls(gtx layout.Context, c *card) layout.Dimensions {
	return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(r.Theme, &c.deleteBtn, "X")
			btn.Background = colDanger
			btn.Inset = layout.UniformInset(unit.Dp(6))
			return btn.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(r.Theme, &c.enlargeBtn, "Enlarge")
			btn.Background = colAccent
			btn.Inset = layout.UniformInset(unit.Dp(6))
			return btn.Layout(gtx)
		}),
	)
}
