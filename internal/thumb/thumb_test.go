package thumb

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	testCases := []struct {
		src  image.Point
		size int
		want image.Point
	}{
		{image.Pt(400, 200), 200, image.Pt(200, 100)},
		{image.Pt(200, 400), 200, image.Pt(100, 200)},
		{image.Pt(300, 300), 200, image.Pt(200, 200)},
		{image.Pt(50, 20), 200, image.Pt(200, 80)},
		{image.Pt(3000, 1), 200, image.Pt(200, 1)},
		{image.Pt(0, 10), 200, image.Point{}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Fit(tc.src, tc.size), "Fit(%v, %d)", tc.src, tc.size)
	}
}

func TestRenderIsExactSquare(t *testing.T) {
	for _, src := range []image.Image{
		solid(640, 480, color.NRGBA{R: 255, A: 255}),
		solid(480, 640, color.NRGBA{G: 255, A: 255}),
		solid(10, 10, color.NRGBA{B: 255, A: 255}),
	} {
		got := Render(src, 200)
		assert.Equal(t, image.Rect(0, 0, 200, 200), got.Bounds())
	}
}

func TestRenderCentersLandscape(t *testing.T) {
	got := Render(solid(400, 200, color.NRGBA{R: 255, A: 255}), 200)

	// Scaled to 200x100, placed at y=50..150.
	assert.Equal(t, uint8(0), got.RGBAAt(100, 10).A, "letterbox above is transparent")
	assert.Equal(t, uint8(0), got.RGBAAt(100, 190).A, "letterbox below is transparent")

	mid := got.RGBAAt(100, 100)
	assert.InDelta(t, 255, int(mid.R), 1)
	assert.InDelta(t, 255, int(mid.A), 1)
}

func TestRenderIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 123, 77))
	for y := 0; y < 77; y++ {
		for x := 0; x < 123; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 3), B: uint8(x ^ y), A: 255})
		}
	}

	a := Render(src, 64)
	b := Render(src, 64)
	require.Equal(t, a.Bounds(), b.Bounds())
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderEmptySource(t *testing.T) {
	got := Render(image.NewRGBA(image.Rectangle{}), 32)
	assert.Equal(t, image.Rect(0, 0, 32, 32), got.Bounds())

	got = Render(solid(4, 4, color.NRGBA{A: 255}), 0)
	assert.Equal(t, image.Rect(0, 0, 1, 1), got.Bounds())
}
