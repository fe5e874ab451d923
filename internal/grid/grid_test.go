package grid

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/imgsort/internal/model"
)

func TestSlot(t *testing.T) {
	g := DefaultGeometry()

	testCases := []struct {
		c, i int
		want image.Point
	}{
		{0, 0, image.Pt(0, 50)},
		{0, 1, image.Pt(0, 320)},
		{1, 0, image.Pt(210, 50)},
		{4, 3, image.Pt(840, 860)},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, g.Slot(tc.c, tc.i), "Slot(%d, %d)", tc.c, tc.i)
	}
}

func TestTargetColumn(t *testing.T) {
	g := DefaultGeometry()

	testCases := []struct {
		name     string
		widgetX  int
		scrollX  int
		columns  int
		want     int
		wantOK   bool
	}{
		{"origin of first column", 0, 0, 5, 0, true},
		{"center just before second column", 109, 0, 5, 0, true},
		{"center crosses into second column", 110, 0, 5, 1, true},
		{"scroll shifts target", 0, 420, 5, 2, true},
		{"last column", 840, 0, 5, 4, true},
		{"past last column", 950, 0, 5, 5, false},
		{"left of first column", -150, 0, 5, -1, false},
		{"slightly left still first", -90, 0, 5, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.TargetColumn(tc.widgetX, tc.scrollX, g.ColumnWidth, tc.columns)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTargetColumnNoColumns(t *testing.T) {
	_, ok := DefaultGeometry().TargetColumn(0, 0, 200, 0)
	assert.False(t, ok)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, floorDiv(0, 210))
	assert.Equal(t, 0, floorDiv(209, 210))
	assert.Equal(t, 1, floorDiv(210, 210))
	assert.Equal(t, -1, floorDiv(-1, 210))
	assert.Equal(t, -1, floorDiv(-210, 210))
	assert.Equal(t, -2, floorDiv(-211, 210))
}

func fill(t *testing.T, b *model.Board, c int, names ...string) []model.Handle {
	t.Helper()
	var hs []model.Handle
	for _, n := range names {
		e := model.Entry{Name: n, Handle: model.NewHandle()}
		_, err := b.Insert(c, b.Len(c), e)
		require.NoError(t, err)
		hs = append(hs, e.Handle)
	}
	return hs
}

func TestReflowIsIdempotent(t *testing.T) {
	b := model.NewBoard(2)
	hs := fill(t, b, 0, "a.png", "b.png", "c.png")
	e := NewEngine(DefaultGeometry())

	moved := e.ReflowAll(b)
	assert.Len(t, moved, 3)

	before := map[model.Handle]image.Point{}
	for _, h := range hs {
		p, ok := e.Position(h)
		require.True(t, ok)
		before[h] = p
	}

	assert.Empty(t, e.ReflowAll(b))
	for _, h := range hs {
		p, _ := e.Position(h)
		assert.Equal(t, before[h], p)
	}
}

func TestReflowAfterRemoveClosesGap(t *testing.T) {
	b := model.NewBoard(2)
	hs := fill(t, b, 0, "cat.png", "dog.png", "eel.png")
	e := NewEngine(DefaultGeometry())
	e.ReflowAll(b)

	pos, err := b.Remove(0, hs[0])
	require.NoError(t, err)
	e.Forget(hs[0])

	moved := e.Reflow(b, 0, pos)
	assert.ElementsMatch(t, []model.Handle{hs[1], hs[2]}, moved)

	p, _ := e.Position(hs[1])
	assert.Equal(t, e.Geometry().Slot(0, 0), p)
	p, _ = e.Position(hs[2])
	assert.Equal(t, e.Geometry().Slot(0, 1), p)

	_, ok := e.Position(hs[0])
	assert.False(t, ok)
}

func TestReflowOnlyTouchesTail(t *testing.T) {
	b := model.NewBoard(1)
	hs := fill(t, b, 0, "a.png", "b.png")
	e := NewEngine(DefaultGeometry())
	e.ReflowAll(b)

	extra := fill(t, b, 0, "c.png")
	moved := e.Reflow(b, 0, 2)
	assert.Equal(t, extra, moved)

	p, _ := e.Position(hs[0])
	assert.Equal(t, e.Geometry().Slot(0, 0), p)
}

func TestBounds(t *testing.T) {
	g := DefaultGeometry()
	b := model.NewBoard(5)
	e := NewEngine(g)

	assert.Equal(t, image.Rect(0, 0, 1050, 100), e.Bounds(b))

	fill(t, b, 2, "a.png", "b.png")
	assert.Equal(t, image.Rect(0, 0, 1050, 50+2*270+50), e.Bounds(b))
}

func TestViewportClamp(t *testing.T) {
	bounds := image.Rect(0, 0, 1050, 2000)
	v := Viewport{Size: image.Pt(800, 600)}

	assert.True(t, v.ScrollBy(image.Pt(0, 300), bounds))
	assert.Equal(t, image.Pt(0, 300), v.Offset)

	v.ScrollBy(image.Pt(0, 5000), bounds)
	assert.Equal(t, image.Pt(0, 1400), v.Offset)

	v.ScrollBy(image.Pt(-100, -9000), bounds)
	assert.Equal(t, image.Pt(0, 0), v.Offset)
	assert.False(t, v.ScrollBy(image.Pt(0, -10), bounds))

	v.ScrollBy(image.Pt(900, 0), bounds)
	assert.Equal(t, 250, v.Offset.X)
}

func TestViewportResizeLargerThanContent(t *testing.T) {
	v := Viewport{Offset: image.Pt(100, 400)}
	v.Resize(image.Pt(2000, 3000), image.Rect(0, 0, 1050, 2000))
	assert.Equal(t, image.Pt(0, 0), v.Offset)
}

func TestViewportVisible(t *testing.T) {
	v := Viewport{Offset: image.Pt(0, 500), Size: image.Pt(800, 600)}
	assert.True(t, v.Visible(image.Rect(0, 600, 200, 860)))
	assert.False(t, v.Visible(image.Rect(0, 0, 200, 260)))
}

func TestViewportVerticalSpan(t *testing.T) {
	bounds := image.Rect(0, 0, 1050, 2000)
	v := Viewport{Offset: image.Pt(0, 500), Size: image.Pt(800, 600)}

	start, end := v.VerticalSpan(bounds)
	assert.InDelta(t, 0.25, start, 1e-6)
	assert.InDelta(t, 0.55, end, 1e-6)

	start, end = Viewport{Size: image.Pt(800, 2400)}.VerticalSpan(bounds)
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(1), end)

	start, end = Viewport{Size: image.Pt(800, 600)}.VerticalSpan(image.Rectangle{})
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(1), end)
}

func TestViewportScrollByFraction(t *testing.T) {
	bounds := image.Rect(0, 0, 1050, 2000)
	v := Viewport{Size: image.Pt(800, 600)}

	assert.True(t, v.ScrollByFraction(0.1, bounds))
	assert.Equal(t, 200, v.Offset.Y)

	// A drag past the end clamps to the last screenful.
	v.ScrollByFraction(1, bounds)
	assert.Equal(t, 1400, v.Offset.Y)
	assert.Equal(t, 0, v.Offset.X)

	start, end := v.VerticalSpan(bounds)
	assert.InDelta(t, 0.7, start, 1e-6)
	assert.InDelta(t, 1.0, end, 1e-6)

	assert.False(t, v.ScrollByFraction(0, bounds))
}
