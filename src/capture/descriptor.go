package capture

import "github.com/jmac006/RegionMirror/src/geometry"

// DefaultFrameRateCap bounds providers that are not given an explicit cap.
const DefaultFrameRateCap = 30

// Descriptor is the fully-resolved parameter set handed to the capture
// provider. It is immutable once a session starts; changing any field
// requires a new session.
type Descriptor struct {
	DisplayID string

	// Destination size in device pixels; equals the source size because
	// the provider must never scale internally.
	Width  int
	Height int

	// Source is the capture rectangle in the display's device pixels,
	// top-left origin, integer edges, at least 16x16.
	Source geometry.PixelRect

	FrameRateCap int
	Format       PixelFormat

	// ExactSize requires the provider to deliver frames at exactly
	// Width x Height with no internal scaling.
	ExactSize bool
}

// BuildDescriptor converts a selected region in global logical coordinates
// into the capture descriptor for its owning display. High-density displays
// use the boundary-aligned conversion, which floors the minimum corner and
// ceils the maximum corner so no one-pixel gutter or overlap appears at
// fractional boundaries; 1x displays round directly. Both paths clamp to
// the provider's 16-pixel minimum.
func BuildDescriptor(region geometry.LogicalRect, d geometry.Display, fpsCap int) Descriptor {
	local := region.ToLocal(d)

	var src geometry.PixelRect
	if d.HighDensity() {
		src, _ = geometry.PixelRectAligned(local, d)
	} else {
		src = geometry.PixelRectRounded(local, d)
	}

	if fpsCap <= 0 {
		fpsCap = DefaultFrameRateCap
	}
	return Descriptor{
		DisplayID:    d.ID,
		Width:        src.Width,
		Height:       src.Height,
		Source:       src,
		FrameRateCap: fpsCap,
		Format:       FormatRGBA8888,
		ExactSize:    true,
	}
}
