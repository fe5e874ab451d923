// Package drag tracks a single press-move-release gesture on a card and
// resolves where it was dropped.
package drag

import (
	"image"

	"github.com/justyntemme/imgsort/internal/debug"
	"github.com/justyntemme/imgsort/internal/grid"
	"github.com/justyntemme/imgsort/internal/model"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Kind is how a gesture ended.
type Kind int

const (
	// Cancelled means the drop mapped to no column, or the pointer was cancelled.
	Cancelled Kind = iota
	// Snapped means the card was released over its own column.
	Snapped
	// Dropped means the card was released over another column.
	Dropped
)

func (k Kind) String() string {
	switch k {
	case Snapped:
		return "snapped"
	case Dropped:
		return "dropped"
	default:
		return "cancelled"
	}
}

// Session is the transient state of one gesture. Positions are content
// coordinates in dp; Press is the pointer position at press time.
type Session struct {
	Handle  model.Handle
	Source  model.Location
	Origin  image.Point // computed slot position before the drag
	Press   image.Point
	Current image.Point // where the card is drawn now
	Moved   bool
}

// Outcome is the resolved result of a release.
type Outcome struct {
	Kind   Kind
	Handle model.Handle
	Source model.Location
	Target int // valid only for Dropped
	// SnapTo is where the card returns to for Cancelled and Snapped.
	SnapTo image.Point
}

// Controller owns at most one Session at a time.
type Controller struct {
	session Session
	state   State
}

// State returns Idle or Dragging.
func (c *Controller) State() State {
	return c.state
}

// Session returns the active session.
func (c *Controller) Session() (Session, bool) {
	return c.session, c.state == Dragging
}

// Press starts a session. It returns false if a gesture is already active.
func (c *Controller) Press(h model.Handle, src model.Location, origin, pointer image.Point) bool {
	if c.state == Dragging {
		return false
	}
	c.session = Session{
		Handle:  h,
		Source:  src,
		Origin:  origin,
		Press:   pointer,
		Current: origin,
	}
	c.state = Dragging
	debug.Log(debug.DRAG, "press %s col=%d pos=%d origin=%v", h, src.Column, src.Position, origin)
	return true
}

// Move follows the pointer and returns the card's new position.
func (c *Controller) Move(pointer image.Point) (image.Point, bool) {
	if c.state != Dragging {
		return image.Point{}, false
	}
	c.session.Current = c.session.Origin.Add(pointer.Sub(c.session.Press))
	c.session.Moved = true
	return c.session.Current, true
}

// Release resolves the drop. scroll is the viewport offset and width the card width, in dp.
// The controller is Idle afterwards regardless of the outcome.
func (c *Controller) Release(pointer, scroll image.Point, width int, g grid.Geometry, columns int) Outcome {
	if c.state != Dragging {
		return Outcome{Kind: Cancelled}
	}
	if pointer != c.session.Press {
		c.Move(pointer)
	}
	s := c.session
	c.reset()

	out := Outcome{
		Handle: s.Handle,
		Source: s.Source,
		SnapTo: s.Origin,
	}

	widgetX := s.Current.X - scroll.X
	target, ok := g.TargetColumn(widgetX, scroll.X, width, columns)
	switch {
	case !ok:
		out.Kind = Cancelled
	case target == s.Source.Column:
		out.Kind = Snapped
	default:
		out.Kind = Dropped
		out.Target = target
	}
	debug.Log(debug.DRAG, "release %s at %v: %s target=%d", s.Handle, s.Current, out.Kind, target)
	return out
}

// Cancel abandons the active gesture.
func (c *Controller) Cancel() (Outcome, bool) {
	if c.state != Dragging {
		return Outcome{}, false
	}
	s := c.session
	c.reset()
	debug.Log(debug.DRAG, "cancel %s", s.Handle)
	return Outcome{Kind: Cancelled, Handle: s.Handle, Source: s.Source, SnapTo: s.Origin}, true
}

func (c *Controller) reset() {
	c.session = Session{}
	c.state = Idle
}
