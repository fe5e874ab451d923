package ui

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// openDeleteConfirm shows the confirmation dialog for one card.
func (r *Renderer) openDeleteConfirm(cv CardView) {
	r.deleteConfirmOpen = true
	r.deleteTarget = cv.Handle
	r.deleteName = cv.Name
}

func (r *Renderer) layoutDeleteConfirm(gtx layout.Context, eventOut *UIEvent) layout.Dimensions {
	if !r.deleteConfirmOpen {
		return layout.Dimensions{}
	}

	if r.deleteConfirmYes.Clicked(gtx) {
		r.deleteConfirmOpen = false
		*eventOut = UIEvent{Action: ActionConfirmDelete, Handle: r.deleteTarget}
		return layout.Dimensions{}
	}
	if r.deleteConfirmNo.Clicked(gtx) {
		r.deleteConfirmOpen = false
		return layout.Dimensions{}
	}

	message := fmt.Sprintf("Are you sure you want to delete \"%s\"?", r.deleteName)
	return r.modalBackdrop(gtx, 350, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.H6(r.Theme, "Confirm Delete")
					lbl.Color = colDanger
					lbl.Font.Weight = font.Bold
					return lbl.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, message)
					lbl.Color = colBlack
					return lbl.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, "This action cannot be undone.")
					lbl.Color = colGray
					return lbl.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.dialogButtonRow(gtx, &r.deleteConfirmNo, &r.deleteConfirmYes, "Cancel", "Delete", colDanger)
				}),
			)
		})
	})
}

// modalBackdrop darkens the window, swallows pointer input below it and
// centers a white box of the given width.
func (r *Renderer) modalBackdrop(gtx layout.Context, width unit.Dp, content layout.Widget) layout.Dimensions {
	size := gtx.Constraints.Max

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	paint.ColorOp{Color: colBackdrop}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	event.Op(gtx.Ops, &r.deleteConfirmOpen)
	area.Pop()
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: &r.deleteConfirmOpen, Kinds: pointer.Press | pointer.Release}); !ok {
			break
		}
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(width))
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(unit.Dp(8))
				paint.FillShape(gtx.Ops, colWhite, clip.RRect{
					Rect: image.Rectangle{Max: gtx.Constraints.Min},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}.Op(gtx.Ops))
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(content),
		)
	})
}

func (r *Renderer) dialogButtonRow(gtx layout.Context, cancel, confirm *widget.Clickable, cancelText, confirmText string, confirmColor color.NRGBA) layout.Dimensions {
	return layout.Flex{Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(r.Theme, cancel, cancelText)
			btn.Background = colCardBorder
			btn.Color = colBlack
			return btn.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(r.Theme, confirm, confirmText)
			btn.Background = confirmColor
			return btn.Layout(gtx)
		}),
	)
}
