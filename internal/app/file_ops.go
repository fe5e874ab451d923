package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/drag"
	"github.com/justyntemme/imgsort/internal/fs"
	"github.com/justyntemme/imgsort/internal/model"
	"github.com/justyntemme/imgsort/internal/organizer"
	"github.com/justyntemme/imgsort/internal/ui"
)

// doDrop applies a finished drag. Snaps and cancels only need a redraw.
func (o *Orchestrator) doDrop(out drag.Outcome) {
	if out.Kind != drag.Dropped {
		o.window.Invalidate()
		return
	}

	oldPath, _ := o.organizer.Path(out.Handle)
	res, err := o.organizer.Drop(out)
	if err != nil {
		o.ui.ShowError(o.describeError("move", res.Entry.Name, out.Target, err))
		o.window.Invalidate()
		return
	}
	if res.Noop {
		o.window.Invalidate()
		return
	}

	o.images.Remove(oldPath)
	o.ui.ShowSuccess(fmt.Sprintf("Moved %q to %s", res.Entry.Name, o.organizer.Slots()[res.To.Column].Label))
	o.reportStoreErr(res)
	o.syncState()
}

// doDelete removes the file and its card. A file that was already gone is
// still dropped from the column and reported as a warning.
func (o *Orchestrator) doDelete(h model.Handle) {
	path, _ := o.organizer.Path(h)
	res, err := o.organizer.Delete(h)
	switch {
	case errors.Is(err, fs.ErrNotFound):
		o.ui.ShowWarning(fmt.Sprintf("%q was already gone from disk and has been removed", res.Entry.Name))
	case err != nil:
		o.ui.ShowError(o.describeError("delete", res.Entry.Name, -1, err))
		o.window.Invalidate()
		return
	default:
		o.ui.ShowSuccess(fmt.Sprintf("Deleted %q", res.Entry.Name))
	}

	o.images.Remove(path)
	o.reportStoreErr(res)
	o.syncState()
}

// doEnlarge opens the full-resolution image in its own window.
func (o *Orchestrator) doEnlarge(h model.Handle) {
	path, ok := o.organizer.Path(h)
	if !ok {
		o.ui.ShowError("Image is no longer on the board")
		return
	}
	img, err := o.images.Load(path)
	if err != nil {
		log.Printf("Enlarge: failed to decode %s: %v", path, err)
		o.ui.ShowError(fmt.Sprintf("Cannot open %s: %v", path, err))
		o.window.Invalidate()
		return
	}

	caption := path
	if info, err := fs.Describe(path); err != nil {
		log.Printf("Enlarge: failed to describe %s: %v", path, err)
	} else {
		caption = ui.EnlargeCaption(info)
	}
	debug.Log(debug.UI, "enlarge %s, %d image(s) cached", path, o.images.Size())
	go runEnlargeWindow(path, caption, img)
}

func (o *Orchestrator) reportStoreErr(res organizer.Result) {
	if res.StoreErr != nil {
		o.ui.ShowWarning("Column order was not saved: " + res.StoreErr.Error())
	}
}

// describeError turns an operation failure into a toast message.
// target is the destination column of a move, or -1.
func (o *Orchestrator) describeError(op, name string, target int, err error) string {
	targetLabel := "the target column"
	if slots := o.organizer.Slots(); target >= 0 && target < len(slots) {
		targetLabel = slots[target].Label
	}

	switch {
	case errors.Is(err, fs.ErrConflict):
		return fmt.Sprintf("Cannot move %q: %s already has a file with that name", name, targetLabel)
	case errors.Is(err, fs.ErrNotFound):
		return fmt.Sprintf("Cannot %s %q: the file no longer exists", op, name)
	case errors.Is(err, model.ErrNotFound):
		return fmt.Sprintf("Cannot %s: the image is no longer on the board", op)
	default:
		return fmt.Sprintf("Cannot %s %q: %v", op, name, err)
	}
}
