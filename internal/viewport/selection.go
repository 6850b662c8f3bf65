package viewport

import (
	"errors"

	"github.com/gankudadiz/BubbleTrans/pkg/geometry"
)

// ErrEmptySelection is returned by Finish when the drag collapsed to zero
// width or height. Callers treat it as "nothing selected", not a failure.
var ErrEmptySelection = errors.New("selection has zero area")

// SelectionState identifies the controller's position in its state machine.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionDragging
)

func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// SelectionController tracks one in-progress rubber-band drag in screen
// space. Transitions: idle → dragging (Begin), dragging → idle (Finish or
// Cancel). A Begin while dragging replaces the current selection: a second
// press restarts the rubber band rather than being ignored.
type SelectionController struct {
	state   SelectionState
	anchor  geometry.Point2D
	current geometry.Point2D
}

// NewSelectionController returns an idle controller.
func NewSelectionController() *SelectionController {
	return &SelectionController{}
}

// State returns the current state.
func (c *SelectionController) State() SelectionState {
	return c.state
}

// Active reports whether a drag is in progress.
func (c *SelectionController) Active() bool {
	return c.state == SelectionDragging
}

// Begin starts a new selection anchored at the given screen point. Any drag
// already in progress is discarded and replaced.
func (c *SelectionController) Begin(p geometry.Point2D) {
	c.state = SelectionDragging
	c.anchor = p
	c.current = p
}

// Update moves the free corner of the rubber band. Ignored while idle.
func (c *SelectionController) Update(p geometry.Point2D) {
	if c.state != SelectionDragging {
		return
	}
	c.current = p
}

// Rect returns the normalized in-progress rectangle for drawing. Zero rect
// while idle.
func (c *SelectionController) Rect() geometry.Rect {
	if c.state != SelectionDragging {
		return geometry.Rect{}
	}
	return geometry.RectFromCorners(c.anchor, c.current)
}

// Finish ends the drag and returns the normalized screen-space rectangle.
// The corners are swapped as needed so width and height are non-negative.
// A zero-area rectangle returns ErrEmptySelection; either way the controller
// returns to idle.
func (c *SelectionController) Finish() (geometry.Rect, error) {
	if c.state != SelectionDragging {
		return geometry.Rect{}, ErrEmptySelection
	}
	rect := geometry.RectFromCorners(c.anchor, c.current)
	c.state = SelectionIdle
	if rect.Empty() {
		return geometry.Rect{}, ErrEmptySelection
	}
	return rect, nil
}

// Cancel discards the in-progress selection, e.g. on focus loss.
func (c *SelectionController) Cancel() {
	c.state = SelectionIdle
}
