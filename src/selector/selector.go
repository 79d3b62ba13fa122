// Package selector implements interactive region selection: a pure drag
// state machine (Tracker) plus a full-screen overlay that feeds it pointer
// events and shows live feedback.
package selector

import (
	"context"
	"math"

	"github.com/jmac006/RegionMirror/src/geometry"
)

// MinSelectionSpan is the smallest drag, in logical units per axis, that
// produces a selection. Anything smaller is discarded silently.
const MinSelectionSpan = 10.0

// Phase is the tracker's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCompleted
	PhaseCancelled
)

// Selector is the blocking region-selection API. Select returns the snapped
// selection in global logical coordinates, or cancelled=true when the user
// aborted or the drag was degenerate. Only one selection may run at a time;
// starting a new one closes any prior overlay first.
type Selector interface {
	Select(ctx context.Context, d geometry.Display) (region geometry.LogicalRect, cancelled bool, err error)
}

// UpdateFunc receives the current drag rectangle (screen-local, bottom-left
// origin) on every pointer move, for live feedback drawing.
type UpdateFunc func(geometry.LogicalRect)

// Tracker turns a pointer drag on one display into a snapped selection.
// It is not safe for concurrent use; the overlay drives it from the UI turn.
type Tracker struct {
	display  geometry.Display
	phase    Phase
	anchorX  float64
	anchorY  float64
	onUpdate UpdateFunc
}

// NewTracker binds a tracker to the display the overlay covers.
func NewTracker(d geometry.Display, onUpdate UpdateFunc) *Tracker {
	return &Tracker{display: d, onUpdate: onUpdate}
}

// Phase reports the tracker's current lifecycle state.
func (t *Tracker) Phase() Phase { return t.phase }

// PointerDown records the drag anchor in the display's local logical space.
func (t *Tracker) PointerDown(x, y float64) {
	if t.phase != PhaseIdle {
		return
	}
	t.phase = PhaseDragging
	t.anchorX, t.anchorY = x, y
}

// PointerMove publishes the rectangle spanning the anchor and the current
// point while dragging.
func (t *Tracker) PointerMove(x, y float64) {
	if t.phase != PhaseDragging {
		return
	}
	if t.onUpdate != nil {
		t.onUpdate(t.spanned(x, y))
	}
}

// PointerUp finishes the drag. A drag exceeding MinSelectionSpan on both
// axes is snapped to the display's per-axis pixel grid and returned in
// global logical coordinates; anything smaller cancels with no result.
func (t *Tracker) PointerUp(x, y float64) (geometry.LogicalRect, bool) {
	if t.phase != PhaseDragging {
		return geometry.LogicalRect{}, false
	}
	r := t.spanned(x, y)
	if r.Width <= MinSelectionSpan || r.Height <= MinSelectionSpan {
		t.phase = PhaseCancelled
		return geometry.LogicalRect{}, false
	}
	t.phase = PhaseCompleted
	snapped := geometry.Snap(r, t.display.ScaleX, t.display.ScaleY)
	return snapped.ToGlobal(t.display), true
}

// Cancel aborts the drag regardless of state.
func (t *Tracker) Cancel() {
	t.phase = PhaseCancelled
}

func (t *Tracker) spanned(x, y float64) geometry.LogicalRect {
	return geometry.LogicalRect{
		Space:  geometry.SpaceLocal,
		X:      math.Min(t.anchorX, x),
		Y:      math.Min(t.anchorY, y),
		Width:  math.Abs(x - t.anchorX),
		Height: math.Abs(y - t.anchorY),
	}
}
