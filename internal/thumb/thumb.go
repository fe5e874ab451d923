// Package thumb renders square display thumbnails.
package thumb

import (
	"image"

	"golang.org/x/image/draw"
)

// Render scales src so its longer side equals size, keeping the aspect ratio,
// then center-crops a size x size square around it. Where the scaled image is
// narrower than the square the remainder stays transparent.
//
// The result depends only on src and size.
func Render(src image.Image, size int) *image.RGBA {
	size = max(size, 1)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return dst
	}

	scaled := Fit(image.Pt(width, height), size)
	offset := image.Pt((size-scaled.X)/2, (size-scaled.Y)/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(scaled)}

	draw.CatmullRom.Scale(dst, target, src, bounds, draw.Src, nil)
	return dst
}

// Fit returns the dimensions of src scaled so its longer side equals size.
// The shorter side is truncated and never drops below one pixel.
func Fit(src image.Point, size int) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return image.Point{}
	}
	ratio := float64(src.X) / float64(src.Y)
	if ratio > 1 {
		return image.Pt(size, max(int(float64(size)/ratio), 1))
	}
	return image.Pt(max(int(float64(size)*ratio), 1), size)
}
