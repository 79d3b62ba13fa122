package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

var (
	iconOnce sync.Once
	iconPNG  []byte
)

// Icon returns the tray icon as PNG bytes: a dashed selection rectangle
// mirrored into a solid window, drawn at 16x16.
func Icon() []byte {
	iconOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, drawIcon()); err != nil {
			return // nil icon, the tray keeps the platform default
		}
		iconPNG = buf.Bytes()
	})
	return iconPNG
}

func drawIcon() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	blue := color.RGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}
	fill := color.RGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0x66}

	// Dashed source selection, top-left.
	strokeRect(img, 1, 1, 9, 7, blue, true)

	// Solid mirrored window, bottom-right.
	for y := 8; y <= 14; y++ {
		for x := 6; x <= 14; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	strokeRect(img, 6, 8, 14, 14, blue, false)
	return img
}

func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA, dashed bool) {
	on := func(i int) bool { return !dashed || i%3 != 2 }
	for x := x0; x <= x1; x++ {
		if on(x) {
			img.SetRGBA(x, y0, c)
			img.SetRGBA(x, y1, c)
		}
	}
	for y := y0; y <= y1; y++ {
		if on(y) {
			img.SetRGBA(x0, y, c)
			img.SetRGBA(x1, y, c)
		}
	}
}
