package capture

import (
	"image"
	"testing"
)

// A 2560x1600 display right of a 1920x1600 one whose virtual-screen origin
// sits at (-1920, 0): hook coordinates are top-left relative to (-1920, 0),
// the grabber's global space is bottom-left relative to the union.
func TestFromVirtual(t *testing.T) {
	g := &Grabber{
		bounds: map[string]image.Rectangle{
			"display-0": image.Rect(-1920, 0, 0, 1600),
			"display-1": image.Rect(0, 0, 2560, 1600),
		},
		union:   image.Rect(-1920, 0, 2560, 1600),
		unionOK: true,
	}

	x, y, ok := g.FromVirtual(-100, 200)
	if !ok || x != 1820 || y != 1400 {
		t.Fatalf("FromVirtual(-100, 200) = (%v, %v, %v), want (1820, 1400, true)", x, y, ok)
	}

	// The union's top-left hook corner is the global space's top-left too.
	if x, y, _ := g.FromVirtual(-1920, 0); x != 0 || y != 1600 {
		t.Fatalf("union corner mapped to (%v, %v), want (0, 1600)", x, y)
	}
}

func TestFromVirtualBeforeEnumeration(t *testing.T) {
	g := NewGrabber()
	if _, _, ok := g.FromVirtual(10, 10); ok {
		t.Fatal("conversion must fail before any display enumeration")
	}
}
