// Package geometry holds the pure coordinate math shared by selection,
// capture and rendering: logical (point) space to device-pixel space
// conversion, per-axis pixel-grid snapping, and local/global translation.
package geometry

import "math"

// Space identifies which coordinate space a LogicalRect is expressed in.
// Silently mixing local and global rectangles is the single largest source
// of defects in this kind of code, so every rectangle carries its space.
type Space int

const (
	// SpaceLocal is relative to the owning display's logical origin.
	SpaceLocal Space = iota
	// SpaceGlobal is relative to the shared desktop logical origin.
	SpaceGlobal
)

// MinCaptureSpan is the smallest edge, in device pixels, the capture
// provider accepts for a source rectangle.
const MinCaptureSpan = 16

// LogicalRect is a rectangle in logical units with a bottom-left origin.
type LogicalRect struct {
	Space  Space
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PixelRect is a rectangle of integer device pixels with a top-left origin.
// It is used only as a capture descriptor's source rectangle and as a
// frame's declared dimensions.
type PixelRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes one attached display at the time of enumeration.
// The active display set can change between operations, so callers
// enumerate fresh per operation instead of caching.
//
// ScaleX and ScaleY are normally equal, but nothing here assumes that:
// a display's horizontal and vertical pixel-per-logical-unit ratios are
// treated as independent throughout.
type Display struct {
	ID          string
	Frame       LogicalRect // global logical frame, bottom-left origin
	PixelWidth  int
	PixelHeight int
	ScaleX      float64
	ScaleY      float64
}

// HighDensity reports whether either axis maps more than one device pixel
// to a logical unit.
func (d Display) HighDensity() bool {
	return d.ScaleX > 1 || d.ScaleY > 1
}

// Contains reports whether the point (x, y), expressed in the same
// coordinate space as the rectangle, lies inside it. The minimum edges are
// inclusive, the maximum edges exclusive, so adjacent display frames never
// both claim a shared boundary point.
func (r LogicalRect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ToGlobal translates a screen-local rectangle into global logical space by
// adding the owning display's global origin. Global rectangles pass through.
func (r LogicalRect) ToGlobal(d Display) LogicalRect {
	if r.Space == SpaceGlobal {
		return r
	}
	return LogicalRect{
		Space:  SpaceGlobal,
		X:      r.X + d.Frame.X,
		Y:      r.Y + d.Frame.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}

// ToLocal translates a global rectangle into the display's local logical
// space by subtracting the display's global origin.
func (r LogicalRect) ToLocal(d Display) LogicalRect {
	if r.Space == SpaceLocal {
		return r
	}
	return LogicalRect{
		Space:  SpaceLocal,
		X:      r.X - d.Frame.X,
		Y:      r.Y - d.Frame.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}

// Snap aligns a rectangle's origin and size independently to the pixel grid
// of the given per-axis scales. Each component becomes an exact multiple of
// 1/scale for its axis, and the operation is idempotent.
func Snap(r LogicalRect, sx, sy float64) LogicalRect {
	return LogicalRect{
		Space:  r.Space,
		X:      snapValue(r.X, sx),
		Y:      snapValue(r.Y, sy),
		Width:  snapValue(r.Width, sx),
		Height: snapValue(r.Height, sy),
	}
}

func snapValue(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// PixelRectRounded converts a screen-local logical rectangle to integer
// device pixels by rounding origin and size independently, flipping the
// vertical axis from the bottom-left logical origin to the capture
// provider's top-left pixel origin. Width and height are clamped to
// MinCaptureSpan.
//
// Independent rounding can leave a one-pixel gutter or overlap at
// non-integer boundaries; use PixelRectAligned on high-density displays.
func PixelRectRounded(r LogicalRect, d Display) PixelRect {
	logicalHeight := d.Frame.Height
	return PixelRect{
		X:      int(math.Round(r.X * d.ScaleX)),
		Y:      int(math.Round((logicalHeight - r.Y - r.Height) * d.ScaleY)),
		Width:  max(MinCaptureSpan, int(math.Round(r.Width*d.ScaleX))),
		Height: max(MinCaptureSpan, int(math.Round(r.Height*d.ScaleY))),
	}
}

// PixelRectAligned converts a screen-local logical rectangle to integer
// device pixels by flooring the minimum corner and ceiling the maximum
// corner independently per axis, then taking width and height as the
// difference. The returned logical rectangle is the same area re-derived
// from the aligned pixel edges, for APIs that still expect logical units;
// its edges land exactly on the pixel grid.
func PixelRectAligned(r LogicalRect, d Display) (PixelRect, LogicalRect) {
	logicalHeight := d.Frame.Height

	x0 := math.Floor(r.X * d.ScaleX)
	x1 := math.Ceil((r.X + r.Width) * d.ScaleX)
	if x1-x0 < MinCaptureSpan {
		x1 = x0 + MinCaptureSpan
	}

	// In flipped device space the rectangle's top edge is H - y - height.
	top := math.Floor((logicalHeight - r.Y - r.Height) * d.ScaleY)
	bottom := math.Ceil((logicalHeight - r.Y) * d.ScaleY)
	if bottom-top < MinCaptureSpan {
		bottom = top + MinCaptureSpan
	}

	px := PixelRect{
		X:      int(x0),
		Y:      int(top),
		Width:  int(x1 - x0),
		Height: int(bottom - top),
	}
	aligned := LogicalRect{
		Space:  r.Space,
		X:      x0 / d.ScaleX,
		Y:      logicalHeight - bottom/d.ScaleY,
		Width:  (x1 - x0) / d.ScaleX,
		Height: (bottom - top) / d.ScaleY,
	}
	return px, aligned
}
