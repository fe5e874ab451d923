package ui

import (
	"image"
	"math"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/drag"
	"github.com/justyntemme/imgsort/internal/grid"
	"github.com/justyntemme/imgsort/internal/model"
)

// card holds the widget state of one thumbnail across frames.
type card struct {
	drag       Draggable
	deleteBtn  widget.Clickable
	enlargeBtn widget.Clickable
	thumb      *image.RGBA
	imageOp    paint.ImageOp
	seen       bool
}

type Renderer struct {
	Theme *material.Theme

	drag     drag.Controller
	viewport grid.Viewport
	cards    map[model.Handle]*card

	canvasTag struct{}
	vbar      widget.Scrollbar

	toast Toast

	deleteConfirmOpen bool
	deleteTarget      model.Handle
	deleteName        string
	deleteConfirmYes  widget.Clickable
	deleteConfirmNo   widget.Clickable
}

func NewRenderer() *Renderer {
	return &Renderer{
		Theme: material.NewTheme(),
		cards: make(map[model.Handle]*card),
	}
}

// Layout draws the whole window and returns at most one user action.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent

	r.syncCards(state)

	layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return r.layoutCanvas(gtx, state, &eventOut)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return r.layoutToast(gtx, r.Theme)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return r.layoutDeleteConfirm(gtx, &eventOut)
		}),
	)

	if eventOut.Action != ActionNone {
		debug.Log(debug.UI, "action %s on %s", eventOut.Action, eventOut.Handle)
	}
	return eventOut
}

// syncCards creates widget state for new handles and drops state for handles
// that left the board. Thumbnail image ops are rebuilt only when the image changes.
func (r *Renderer) syncCards(state *State) {
	for _, c := range r.cards {
		c.seen = false
	}
	for _, col := range state.Columns {
		for _, cv := range col.Cards {
			c, ok := r.cards[cv.Handle]
			if !ok {
				c = &card{}
				r.cards[cv.Handle] = c
			}
			if c.thumb != cv.Thumb && cv.Thumb != nil {
				c.thumb = cv.Thumb
				c.imageOp = paint.NewImageOp(cv.Thumb)
			}
			c.seen = true
		}
	}
	for h, c := range r.cards {
		if !c.seen {
			delete(r.cards, h)
		}
	}
}

// toDp converts a pixel offset to rounded dp.
func toDp(gtx layout.Context, px float32) int {
	ppd := gtx.Metric.PxPerDp
	if ppd <= 0 {
		ppd = 1
	}
	return int(math.Round(float64(px / ppd)))
}

func pointDp(gtx layout.Context, x, y float32) image.Point {
	return image.Pt(toDp(gtx, x), toDp(gtx, y))
}

func pointPx(gtx layout.Context, p image.Point) image.Point {
	ppd := gtx.Metric.PxPerDp
	if ppd <= 0 {
		ppd = 1
	}
	return image.Pt(int(math.Round(float64(float32(p.X)*ppd))), int(math.Round(float64(float32(p.Y)*ppd))))
}
