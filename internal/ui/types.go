package ui

import (
	"image"

	"github.com/justyntemme/imgsort/internal/drag"
	"github.com/justyntemme/imgsort/internal/grid"
	"github.com/justyntemme/imgsort/internal/model"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionDrop          // Outcome holds the finished gesture
	ActionDelete        // Delete clicked, confirmation not required
	ActionConfirmDelete // Delete confirmed in the dialog
	ActionEnlarge
)

func (a UIAction) String() string {
	switch a {
	case ActionDrop:
		return "drop"
	case ActionDelete:
		return "delete"
	case ActionConfirmDelete:
		return "confirm-delete"
	case ActionEnlarge:
		return "enlarge"
	default:
		return "none"
	}
}

type UIEvent struct {
	Action  UIAction
	Handle  model.Handle
	Outcome drag.Outcome
}

// CardView is one thumbnail as the renderer sees it. Pos is the computed
// slot position in content dp.
type CardView struct {
	Handle   model.Handle
	Name     string
	Location model.Location
	Pos      image.Point
	Thumb    *image.RGBA
}

type ColumnView struct {
	Label string
	Cards []CardView
}

// State is rebuilt by the orchestrator after every mutation.
type State struct {
	Columns       []ColumnView
	Geometry      grid.Geometry
	Bounds        image.Rectangle // scroll region in dp
	ConfirmDelete bool
}
