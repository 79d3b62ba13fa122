package render

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// WindowSurface presents frames in a fyne window using the matched-scale
// strategy. The canvas image is pinned to the frame's pixel size divided by
// the canvas scale and drawn with ImageScalePixels, so one captured pixel
// lands on exactly one device pixel; the frame sits centered in whatever
// content area the user resizes the window to.
//
// Construct it on the main goroutine before the app loop starts. All later
// mutation marshals onto the UI turn, so Surface methods are safe to call
// from the render goroutine.
type WindowSurface struct {
	win   fyne.Window
	img   *canvas.Image
	sized bool
}

// NewWindowSurface builds the (hidden) mirror window. onClosed runs when
// the user closes the window; the window itself is only hidden so the next
// session can reuse it.
func NewWindowSurface(app fyne.App, title string, onClosed func()) *WindowSurface {
	s := &WindowSurface{}
	s.win = app.NewWindow(title)
	s.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.img.ScaleMode = canvas.ImageScalePixels
	s.win.SetContent(container.NewCenter(s.img))
	s.win.SetCloseIntercept(func() {
		s.win.Hide()
		if onClosed != nil {
			onClosed()
		}
	})
	return s
}

// Scale implements Surface with the hosting canvas's current scale, so a
// move to a different-density display is reflected on the next frame.
func (s *WindowSurface) Scale() float64 {
	var sc float32
	fyne.DoAndWait(func() {
		sc = s.win.Canvas().Scale()
	})
	return float64(sc)
}

// SetFrame implements Surface. The swap is a plain content replacement;
// fyne's canvas image has no implicit cross-frame animation to disable.
func (s *WindowSurface) SetFrame(img *image.RGBA, logicalW, logicalH float64) {
	fyne.Do(func() {
		size := fyne.NewSize(float32(logicalW), float32(logicalH))
		s.img.Image = img
		s.img.SetMinSize(size)
		s.img.Refresh()
		if !s.sized {
			// First frame of a session decides the window size, snapped to
			// the pixel grid; afterwards the user owns the window size and
			// the frame stays centered within it.
			w, h := SnapWindowSize(logicalW, logicalH, float64(s.win.Canvas().Scale()))
			s.win.Resize(fyne.NewSize(float32(w), float32(h)))
			s.sized = true
		}
	})
}

// Show reveals the mirror window for a new session.
func (s *WindowSurface) Show() {
	fyne.Do(func() {
		s.sized = false
		s.win.Show()
	})
}

// Hide conceals the window when mirroring ends.
func (s *WindowSurface) Hide() {
	fyne.Do(s.win.Hide)
}
