// Package grid derives on-screen positions from the column model.
//
// All values are in device-independent pixels (dp). The renderer converts to
// physical pixels at draw time.
package grid

import "image"

// Geometry holds the fixed layout constants.
type Geometry struct {
	ColumnWidth  int // W: width of a card
	SlotHeight   int // H: height of a card including its control strip
	Gap          int // spacing between columns and between stacked cards
	HeaderOffset int // space reserved above the first card for the column header
	Margin       int // extra space below the tallest column
}

// DefaultGeometry gives a column pitch of 210 and a slot pitch of 270.
func DefaultGeometry() Geometry {
	return Geometry{
		ColumnWidth:  200,
		SlotHeight:   260,
		Gap:          10,
		HeaderOffset: 50,
		Margin:       50,
	}
}

// ColumnPitch is the horizontal distance between two column origins.
func (g Geometry) ColumnPitch() int {
	return g.ColumnWidth + g.Gap
}

// RowPitch is the vertical distance between two stacked cards.
func (g Geometry) RowPitch() int {
	return g.SlotHeight + g.Gap
}

// Slot returns the top-left corner of the card at stack position i of column c.
func (g Geometry) Slot(c, i int) image.Point {
	return image.Point{
		X: c * g.ColumnPitch(),
		Y: i*g.RowPitch() + g.HeaderOffset,
	}
}

// Bounds returns the scroll region for the given column count and tallest column.
func (g Geometry) Bounds(columns, tallest int) image.Rectangle {
	return image.Rect(0, 0,
		columns*g.ColumnPitch(),
		g.HeaderOffset+tallest*g.RowPitch()+g.Margin,
	)
}

// TargetColumn maps a dropped widget to a column index.
// widgetX is relative to the viewport, scrollX is the horizontal scroll offset.
// The second result is false when the widget center falls outside every column.
func (g Geometry) TargetColumn(widgetX, scrollX, widgetWidth, columns int) (int, bool) {
	pitch := g.ColumnPitch()
	if pitch <= 0 || columns <= 0 {
		return 0, false
	}
	c := floorDiv(widgetX+scrollX+widgetWidth/2, pitch)
	if c < 0 || c >= columns {
		return c, false
	}
	return c, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
