package ui

import (
	"fmt"
	"image"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/dustin/go-humanize"

	"github.com/justyntemme/imgsort/internal/fs"
)

// EnlargeView shows one full-resolution image scaled to fit its window.
// It belongs to the enlarge window's own event loop.
type EnlargeView struct {
	Theme   *material.Theme
	imageOp paint.ImageOp
	size    image.Point
	caption string
}

func NewEnlargeView(img image.Image, caption string) *EnlargeView {
	return &EnlargeView{
		Theme:   material.NewTheme(),
		imageOp: paint.NewImageOp(img),
		size:    img.Bounds().Size(),
		caption: caption,
	}
}

func (v *EnlargeView) Layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, colEnlargeBg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, v.layoutImage)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(v.Theme, v.caption)
				lbl.Color = colWhite
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			})
		}),
	)
}

// layoutImage scales the image down to fit, never up, and centers it.
func (v *EnlargeView) layoutImage(gtx layout.Context) layout.Dimensions {
	if v.size.X == 0 || v.size.Y == 0 {
		return layout.Dimensions{Size: gtx.Constraints.Max}
	}
	fit := FitWithin(v.size, gtx.Constraints.Max)

	img := widget.Image{
		Src: v.imageOp,
		Fit: widget.Contain,
	}
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints = layout.Exact(fit)
		return img.Layout(gtx)
	})
}

// FitWithin scales size down to fit avail, keeping the aspect ratio.
// Sizes that already fit are returned unchanged.
func FitWithin(size, avail image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 || avail.X <= 0 || avail.Y <= 0 {
		return image.Point{}
	}
	scale := min(float64(avail.X)/float64(size.X), float64(avail.Y)/float64(size.Y), 1)
	return image.Pt(max(int(float64(size.X)*scale), 1), max(int(float64(size.Y)*scale), 1))
}

// EnlargeCaption summarizes a file for the enlarge window.
func EnlargeCaption(info fs.Info) string {
	parts := []string{info.Name}
	if info.Dimensions != (image.Point{}) {
		parts = append(parts, fmt.Sprintf("%dx%d", info.Dimensions.X, info.Dimensions.Y))
	}
	parts = append(parts, humanize.Bytes(uint64(max(info.Size, 0))))
	if !info.ModTime.IsZero() {
		parts = append(parts, "modified "+humanize.Time(info.ModTime))
	}
	if !info.Taken.IsZero() {
		parts = append(parts, "taken "+info.Taken.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, " | ")
}
