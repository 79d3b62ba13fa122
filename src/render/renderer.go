package render

import (
	"context"
	"image"
	"math"

	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/capture"
)

// Surface is the destination drawable. Implementations mutate the surface
// only on its owning thread; the renderer calls them from its own goroutine
// and implementations marshal onto the UI turn themselves.
type Surface interface {
	// Scale is the hosting display's device pixels per logical unit,
	// re-read on every frame so a move to a different-scale display is
	// picked up without a stale backing store.
	Scale() float64

	// SetFrame swaps the surface content to the given image, sized to
	// exactly logicalW x logicalH logical units. The swap is a discrete
	// state change: no animation, no scaling filter.
	SetFrame(img *image.RGBA, logicalW, logicalH float64)
}

// Renderer drains the frame mailbox and presents each frame pixel-exactly
// using the matched-scale strategy: the surface's logical size is the
// frame's pixel size divided by the current display scale, so the backing
// pixel count always equals the frame's pixel count.
type Renderer struct {
	surface Surface
	inbox   *Mailbox[capture.Frame]

	// device-pixel content size of the most recent frame
	pxW, pxH  int
	presented uint64
}

// New wires a renderer to its surface.
func New(surface Surface) *Renderer {
	return &Renderer{surface: surface, inbox: NewMailbox[capture.Frame]()}
}

// Submit hands a frame over from the delivery context. It never blocks;
// a pending unconsumed frame is replaced. Implements capture.FrameSink.
func (r *Renderer) Submit(f capture.Frame) {
	r.inbox.Put(f)
}

// Dropped reports frames replaced in the mailbox before presentation.
func (r *Renderer) Dropped() uint64 { return r.inbox.Dropped() }

// Clear discards a pending unpresented frame. Call it when a session ends,
// after deliveries have stopped, so a stale frame cannot reach the surface
// or size the next session's window.
func (r *Renderer) Clear() { r.inbox.Clear() }

// ContentPixelSize is the device-pixel size of the current surface content.
func (r *Renderer) ContentPixelSize() (int, int) { return r.pxW, r.pxH }

// Run presents frames until ctx is cancelled. It must be the only consumer.
func (r *Renderer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			golog.Debugf("renderer stopped after %d frames (%d dropped)", r.presented, r.Dropped())
			return
		case f := <-r.inbox.Receive():
			r.present(f)
		}
	}
}

func (r *Renderer) present(f capture.Frame) {
	// The frame's own dimensions are authoritative, even when they
	// disagree with the session descriptor: the surface resizes to the
	// frame instead of rejecting it.
	if f.Width != r.pxW || f.Height != r.pxH {
		golog.Debugf("surface content resized to %dx%d px", f.Width, f.Height)
		r.pxW, r.pxH = f.Width, f.Height
	}

	scale := r.surface.Scale()
	if scale <= 0 {
		scale = 1
	}
	w, h := LogicalSize(f.Width, f.Height, scale)
	r.surface.SetFrame(frameImage(f), w, h)
	r.presented++
}

// LogicalSize converts a frame's device-pixel dimensions into the logical
// size that makes the backing store match the frame exactly at the given
// display scale.
func LogicalSize(pxW, pxH int, scale float64) (float64, float64) {
	return float64(pxW) / scale, float64(pxH) / scale
}

// SnapWindowSize clamps a requested window content size to multiples of
// 1/scale logical units, so resizing can never land the drawable on a
// fractional device pixel.
func SnapWindowSize(w, h, scale float64) (float64, float64) {
	if scale <= 0 {
		return w, h
	}
	return math.Round(w*scale) / scale, math.Round(h*scale) / scale
}

// CenterOffset positions content of the given logical size inside a window
// content area, for hosts that present the frame centered.
func CenterOffset(winW, winH, contentW, contentH float64) (float64, float64) {
	return (winW - contentW) / 2, (winH - contentH) / 2
}

// frameImage views a frame as an image.RGBA. RGBA frames share the buffer;
// BGRA frames are converted into a fresh interleaved buffer.
func frameImage(f capture.Frame) *image.RGBA {
	rect := image.Rect(0, 0, f.Width, f.Height)
	if f.Format == capture.FormatRGBA8888 {
		return &image.RGBA{Pix: f.Pix, Stride: f.Stride, Rect: rect}
	}

	img := image.NewRGBA(rect)
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			dst[x*4+0] = src[x*4+2]
			dst[x*4+1] = src[x*4+1]
			dst[x*4+2] = src[x*4+0]
			dst[x*4+3] = src[x*4+3]
		}
	}
	return img
}
