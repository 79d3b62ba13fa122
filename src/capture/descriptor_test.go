package capture

import (
	"testing"

	"github.com/jmac006/RegionMirror/src/geometry"
)

func display2x() geometry.Display {
	return geometry.Display{
		ID:          "display-0",
		Frame:       geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 0, Y: 0, Width: 1280, Height: 800},
		PixelWidth:  2560,
		PixelHeight: 1600,
		ScaleX:      2,
		ScaleY:      2,
	}
}

func display1x() geometry.Display {
	return geometry.Display{
		ID:          "display-1",
		Frame:       geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 1280, Y: 0, Width: 1920, Height: 1080},
		PixelWidth:  1920,
		PixelHeight: 1080,
		ScaleX:      1,
		ScaleY:      1,
	}
}

func TestBuildDescriptorHighDensityUsesAlignedVariant(t *testing.T) {
	d := display2x()
	region := geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 100.3, Y: 50.7, Width: 300.1, Height: 200.9}

	desc := BuildDescriptor(region, d, 60)

	wantSrc, _ := geometry.PixelRectAligned(region.ToLocal(d), d)
	if desc.Source != wantSrc {
		t.Fatalf("Source = %+v, want aligned %+v", desc.Source, wantSrc)
	}
	if desc.Width != wantSrc.Width || desc.Height != wantSrc.Height {
		t.Fatalf("destination %dx%d must equal source %dx%d", desc.Width, desc.Height, wantSrc.Width, wantSrc.Height)
	}
	if !desc.ExactSize {
		t.Fatal("descriptor must forbid internal provider scaling")
	}
	if desc.DisplayID != d.ID {
		t.Fatalf("DisplayID = %q, want %q", desc.DisplayID, d.ID)
	}
	if desc.FrameRateCap != 60 {
		t.Fatalf("FrameRateCap = %d, want 60", desc.FrameRateCap)
	}
}

func TestBuildDescriptorStandardDensityUsesRounding(t *testing.T) {
	d := display1x()
	region := geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 1380, Y: 50, Width: 300, Height: 200}

	desc := BuildDescriptor(region, d, 0)

	want := geometry.PixelRectRounded(region.ToLocal(d), d)
	if desc.Source != want {
		t.Fatalf("Source = %+v, want rounded %+v", desc.Source, want)
	}
	if desc.FrameRateCap != DefaultFrameRateCap {
		t.Fatalf("FrameRateCap = %d, want default %d", desc.FrameRateCap, DefaultFrameRateCap)
	}
}

func TestBuildDescriptorClampsToMinimum(t *testing.T) {
	// 3x5 logical units on a 2x display is 6x10 device pixels before the
	// 16-pixel provider floor.
	d := display2x()
	region := geometry.LogicalRect{Space: geometry.SpaceGlobal, X: 10, Y: 10, Width: 3, Height: 5}

	desc := BuildDescriptor(region, d, 30)
	if desc.Source.Width != geometry.MinCaptureSpan || desc.Source.Height != geometry.MinCaptureSpan {
		t.Fatalf("source = %+v, want both edges clamped to %d", desc.Source, geometry.MinCaptureSpan)
	}
}
