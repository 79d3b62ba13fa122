package selector

import (
	"testing"

	"github.com/jmac006/RegionMirror/src/geometry"
)

func testDisplay() geometry.Display {
	return geometry.Display{
		ID:          "display-0",
		Frame:       geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 1280, Y: 0, Width: 1280, Height: 800},
		PixelWidth:  2560,
		PixelHeight: 1600,
		ScaleX:      2,
		ScaleY:      2,
	}
}

func TestDragProducesSnappedGlobalRect(t *testing.T) {
	var updates []geometry.LogicalRect
	tr := NewTracker(testDisplay(), func(r geometry.LogicalRect) {
		updates = append(updates, r)
	})

	tr.PointerDown(100.3, 50.7)
	if tr.Phase() != PhaseDragging {
		t.Fatalf("expected PhaseDragging after PointerDown, got %v", tr.Phase())
	}
	tr.PointerMove(250, 120)
	tr.PointerMove(400.2, 250.9)

	if len(updates) != 2 {
		t.Fatalf("expected 2 feedback updates, got %d", len(updates))
	}
	if updates[1].Space != geometry.SpaceLocal {
		t.Errorf("feedback rect must be screen-local, got %v", updates[1].Space)
	}

	region, ok := tr.PointerUp(400.2, 250.9)
	if !ok {
		t.Fatal("expected a selection result")
	}
	if tr.Phase() != PhaseCompleted {
		t.Fatalf("expected PhaseCompleted, got %v", tr.Phase())
	}
	if region.Space != geometry.SpaceGlobal {
		t.Fatalf("selection must be global, got %v", region.Space)
	}
	// Edges land on the 0.5-unit grid of a 2x display (offset by the
	// display's integral global origin).
	for _, v := range []float64{region.X - 1280, region.Y, region.Width, region.Height} {
		if v*2 != float64(int(v*2)) {
			t.Errorf("edge %v not on the half-unit grid", v)
		}
	}
}

func TestDegenerateDragIsDiscarded(t *testing.T) {
	tr := NewTracker(testDisplay(), nil)
	tr.PointerDown(100, 100)
	tr.PointerMove(103, 104)

	// Five logical units in each direction is under the threshold.
	region, ok := tr.PointerUp(105, 105)
	if ok {
		t.Fatalf("degenerate drag must be discarded, got %+v", region)
	}
	if tr.Phase() != PhaseCancelled {
		t.Fatalf("expected PhaseCancelled, got %v", tr.Phase())
	}
}

func TestThresholdRequiresBothAxes(t *testing.T) {
	tr := NewTracker(testDisplay(), nil)
	tr.PointerDown(0, 0)
	// Wide but short: height below threshold.
	if _, ok := tr.PointerUp(300, 5); ok {
		t.Fatal("selection with degenerate height must be discarded")
	}
}

func TestReverseDragNormalizes(t *testing.T) {
	tr := NewTracker(testDisplay(), nil)
	tr.PointerDown(400, 250)
	region, ok := tr.PointerUp(100, 50)
	if !ok {
		t.Fatal("expected a selection result")
	}
	local := region.ToLocal(testDisplay())
	if local.X != 100 || local.Y != 50 || local.Width != 300 || local.Height != 200 {
		t.Fatalf("reverse drag not normalized: %+v", local)
	}
}

func TestEventsOutsideDraggingAreIgnored(t *testing.T) {
	tr := NewTracker(testDisplay(), func(geometry.LogicalRect) {
		t.Fatal("no feedback expected before PointerDown")
	})
	tr.PointerMove(10, 10)
	if _, ok := tr.PointerUp(10, 10); ok {
		t.Fatal("PointerUp without a drag must not produce a result")
	}

	tr.Cancel()
	tr.PointerDown(1, 1)
	if tr.Phase() != PhaseCancelled {
		t.Fatalf("cancelled tracker must stay cancelled, got %v", tr.Phase())
	}
}
