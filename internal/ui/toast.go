package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/imgsort/internal/debug"
)

// ToastType indicates the severity/type of toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

type toastMessage struct {
	Message   string
	Type      ToastType
	ExpiresAt time.Time
}

// Toast is a short stack of temporary notifications, newest at the bottom.
type Toast struct {
	mu       sync.Mutex
	messages []toastMessage
}

const (
	toastDuration = 3 * time.Second
	errorDuration = 6 * time.Second
	maxToasts     = 3
)

// ShowToast displays a toast notification that auto-dismisses
func (r *Renderer) ShowToast(message string, toastType ToastType) {
	d := toastDuration
	if toastType == ToastError || toastType == ToastWarning {
		d = errorDuration
	}

	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()

	r.toast.messages = append(r.toast.messages, toastMessage{
		Message:   message,
		Type:      toastType,
		ExpiresAt: time.Now().Add(d),
	})
	if n := len(r.toast.messages); n > maxToasts {
		r.toast.messages = r.toast.messages[n-maxToasts:]
	}
	debug.Log(debug.UI, "toast: %s", message)
}

// ShowError is a convenience method for showing error toasts
func (r *Renderer) ShowError(message string) {
	r.ShowToast(message, ToastError)
}

func (r *Renderer) ShowWarning(message string) {
	r.ShowToast(message, ToastWarning)
}

// ShowSuccess is a convenience method for showing success toasts
func (r *Renderer) ShowSuccess(message string) {
	r.ShowToast(message, ToastSuccess)
}

// activeToasts drops expired messages and returns the rest.
func (r *Renderer) activeToasts(now time.Time) []toastMessage {
	r.toast.mu.Lock()
	defer r.toast.mu.Unlock()

	kept := r.toast.messages[:0]
	for _, m := range r.toast.messages {
		if now.Before(m.ExpiresAt) {
			kept = append(kept, m)
		}
	}
	r.toast.messages = kept
	return append([]toastMessage(nil), kept...)
}

func toastColors(t ToastType) (bg, fg color.NRGBA) {
	switch t {
	case ToastError:
		return color.NRGBA{R: 200, G: 50, B: 50, A: 240}, colWhite
	case ToastWarning:
		return color.NRGBA{R: 220, G: 160, B: 40, A: 240}, color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	case ToastSuccess:
		return color.NRGBA{R: 50, G: 160, B: 80, A: 240}, colWhite
	default:
		return color.NRGBA{R: 60, G: 60, B: 60, A: 240}, colWhite
	}
}

// layoutToast renders the toast stack at the bottom of the window
func (r *Renderer) layoutToast(gtx layout.Context, th *material.Theme) layout.Dimensions {
	messages := r.activeToasts(time.Now())
	if len(messages) == 0 {
		return layout.Dimensions{}
	}

	// Schedule redraw when the next toast should expire
	next := messages[0].ExpiresAt
	for _, m := range messages[1:] {
		if m.ExpiresAt.Before(next) {
			next = m.ExpiresAt
		}
	}
	gtx.Execute(op.InvalidateCmd{At: next})

	children := make([]layout.FlexChild, 0, 2*len(messages))
	for i, m := range messages {
		if i > 0 {
			children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout))
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layoutToastMessage(gtx, th, m)
		}))
	}

	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{
			Bottom: unit.Dp(20),
			Left:   unit.Dp(20),
			Right:  unit.Dp(20),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, children...)
		})
	})
}

func layoutToastMessage(gtx layout.Context, th *material.Theme, m toastMessage) layout.Dimensions {
	bg, fg := toastColors(m.Type)
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))

	// Measure text first
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top:    unit.Dp(12),
		Bottom: unit.Dp(12),
		Left:   unit.Dp(16),
		Right:  unit.Dp(16),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		label := material.Body1(th, m.Message)
		label.Color = fg
		return label.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, bg, clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}.Op(gtx.Ops))
	call.Add(gtx.Ops)

	return dims
}
