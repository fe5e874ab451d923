package app

import (
	"image"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/ui"
)

// runEnlargeWindow runs a secondary window until it is closed. gio needs an
// event loop per window, so this runs on its own goroutine and only reads img.
func runEnlargeWindow(path, caption string, img image.Image) {
	size := ui.FitWithin(img.Bounds().Size(), image.Pt(1200, 900))

	w := new(app.Window)
	w.Option(
		app.Title(filepath.Base(path)),
		app.Size(unit.Dp(max(size.X, 320)), unit.Dp(max(size.Y, 240)+40)),
	)
	view := ui.NewEnlargeView(img, caption)
	debug.Log(debug.UI, "enlarge window opened for %s", path)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			debug.Log(debug.UI, "enlarge window closed for %s", path)
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			view.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
