package ui

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/imgsort/internal/fs"
	"github.com/justyntemme/imgsort/internal/model"
)

func TestImageCacheLRU(t *testing.T) {
	decoded := map[string]int{}
	cache := NewImageCache(2, func(path string) (image.Image, error) {
		decoded[path]++
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})

	for _, p := range []string{"a", "b", "a", "c"} {
		_, err := cache.Load(p)
		require.NoError(t, err)
	}
	// "b" was least recently used when "c" arrived.
	assert.Equal(t, 2, cache.Size())
	_, ok := cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, decoded["a"])

	cache.Remove("a")
	_, ok = cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Size())
}

func TestImageCacheDecodeError(t *testing.T) {
	cache := NewImageCache(4, func(string) (image.Image, error) {
		return nil, errors.New("corrupt")
	})
	_, err := cache.Load("x.png")
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Size())
}

func TestFitWithin(t *testing.T) {
	testCases := []struct {
		size, avail, expected image.Point
	}{
		{image.Pt(100, 50), image.Pt(400, 400), image.Pt(100, 50)},
		{image.Pt(800, 400), image.Pt(400, 400), image.Pt(400, 200)},
		{image.Pt(400, 800), image.Pt(400, 200), image.Pt(100, 200)},
		{image.Pt(0, 10), image.Pt(400, 400), image.Point{}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FitWithin(tc.size, tc.avail), "size=%v avail=%v", tc.size, tc.avail)
	}
}

func TestToastStack(t *testing.T) {
	r := &Renderer{}
	for _, msg := range []string{"one", "two", "three", "four"} {
		r.ShowToast(msg, ToastInfo)
	}
	r.ShowError("boom")

	active := r.activeToasts(time.Now())
	require.Len(t, active, maxToasts)
	assert.Equal(t, "boom", active[len(active)-1].Message)

	// Info toasts expire before errors.
	later := r.activeToasts(time.Now().Add(toastDuration + time.Second))
	require.Len(t, later, 1)
	assert.Equal(t, ToastError, later[0].Type)
	assert.Empty(t, r.activeToasts(time.Now().Add(errorDuration+time.Second)))
}

func TestSyncCardsPrunesRemovedHandles(t *testing.T) {
	r := &Renderer{cards: make(map[model.Handle]*card)}
	keep, gone := model.NewHandle(), model.NewHandle()
	thumb := image.NewRGBA(image.Rect(0, 0, 2, 2))

	r.syncCards(&State{Columns: []ColumnView{{Cards: []CardView{{Handle: keep, Thumb: thumb}, {Handle: gone}}}}})
	require.Len(t, r.cards, 2)
	first := r.cards[keep]
	assert.Same(t, thumb, first.thumb)

	r.syncCards(&State{Columns: []ColumnView{{}, {Cards: []CardView{{Handle: keep, Thumb: thumb}}}}})
	assert.Len(t, r.cards, 1)
	assert.Same(t, first, r.cards[keep], "widget state survives a column change")
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "drop", ActionDrop.String())
	assert.Equal(t, "none", ActionNone.String())
}

func TestEnlargeCaption(t *testing.T) {
	taken := time.Date(2021, 7, 4, 18, 30, 0, 0, time.UTC)
	got := EnlargeCaption(fs.Info{
		Name:       "cat.jpg",
		Size:       2048,
		Dimensions: image.Pt(640, 480),
		Taken:      taken,
	})
	assert.Equal(t, "cat.jpg | 640x480 | 2.0 kB | taken 2021-07-04 18:30", got)

	assert.Equal(t, "x.png | 0 B", EnlargeCaption(fs.Info{Name: "x.png"}))
}

func TestSuccessToastUsesShortDuration(t *testing.T) {
	r := &Renderer{}
	r.ShowSuccess(`Moved "cat.png" to B`)

	active := r.activeToasts(time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, ToastSuccess, active[0].Type)
	assert.Empty(t, r.activeToasts(time.Now().Add(toastDuration+time.Second)))
}
