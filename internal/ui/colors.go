package ui

import "image/color"

var (
	colWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray        = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colCard        = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colCardBorder  = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colPlaceholder = color.NRGBA{R: 66, G: 133, B: 244, A: 40} // Slot left behind by a dragged card
	colDanger      = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colAccent      = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colBackdrop    = color.NRGBA{R: 0, G: 0, B: 0, A: 180}
	colShadow      = color.NRGBA{R: 0, G: 0, B: 0, A: 60}
	colEnlargeBg   = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
)
