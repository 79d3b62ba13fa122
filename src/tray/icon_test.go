package tray

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconIsDecodablePNG(t *testing.T) {
	data := Icon()
	if len(data) == 0 {
		t.Fatal("icon bytes are empty")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("icon does not decode as PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("icon size = %v, want 16x16", b)
	}

	// The selection stroke starts at (1,1).
	r, g, b, a := img.At(1, 1).RGBA()
	if a == 0 || (r>>8) != 0x00 || (g>>8) != 0x78 || (b>>8) != 0xd4 {
		t.Fatalf("stroke pixel = (%d,%d,%d,%d), want the accent color", r>>8, g>>8, b>>8, a>>8)
	}

	// Icon is generated once and reused.
	if &data[0] != &Icon()[0] {
		t.Fatal("icon bytes regenerated on every call")
	}
}
