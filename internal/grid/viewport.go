package grid

import (
	"image"
	"math"
)

// Viewport is the visible window onto the scroll region.
type Viewport struct {
	Offset image.Point // scroll position, top-left of the visible area
	Size   image.Point // visible size
}

// Resize changes the visible size and keeps the offset inside bounds.
// Layout constants are unaffected.
func (v *Viewport) Resize(size image.Point, bounds image.Rectangle) {
	v.Size = size
	v.Clamp(bounds)
}

// ScrollBy moves the offset by delta and reports whether it changed.
func (v *Viewport) ScrollBy(delta image.Point, bounds image.Rectangle) bool {
	before := v.Offset
	v.Offset = v.Offset.Add(delta)
	v.Clamp(bounds)
	return v.Offset != before
}

// Clamp keeps the offset within [0, bounds - size] on both axes.
func (v *Viewport) Clamp(bounds image.Rectangle) {
	maxX := max(bounds.Max.X-v.Size.X, 0)
	maxY := max(bounds.Max.Y-v.Size.Y, 0)
	v.Offset.X = max(0, min(v.Offset.X, maxX))
	v.Offset.Y = max(0, min(v.Offset.Y, maxY))
}

// Visible reports whether r (in content coordinates) intersects the viewport.
func (v Viewport) Visible(r image.Rectangle) bool {
	view := image.Rectangle{Min: v.Offset, Max: v.Offset.Add(v.Size)}
	return r.Overlaps(view)
}

// VerticalSpan returns the visible rows as fractions of the content height,
// the form a scrollbar indicator takes. Content that fits yields 0, 1.
func (v Viewport) VerticalSpan(bounds image.Rectangle) (start, end float32) {
	h := bounds.Max.Y
	if h <= 0 || v.Size.Y >= h {
		return 0, 1
	}
	start = float32(v.Offset.Y) / float32(h)
	end = min(float32(v.Offset.Y+v.Size.Y)/float32(h), 1)
	return start, end
}

// ScrollByFraction scrolls vertically by f times the content height.
func (v *Viewport) ScrollByFraction(f float32, bounds image.Rectangle) bool {
	d := int(math.Round(float64(f) * float64(bounds.Max.Y)))
	return v.ScrollBy(image.Pt(0, d), bounds)
}
