package capture

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kataras/golog"
	"github.com/kbinani/screenshot"

	"github.com/jmac006/RegionMirror/src/geometry"
)

// maxConsecutiveFailures ends the stream with an error instead of spinning
// on a display that stopped answering.
const maxConsecutiveFailures = 10

// Grabber is a polling capture provider built on kbinani/screenshot. It
// addresses device pixels directly, so every enumerated display reports a
// 1:1 scale and a logical frame equal to its pixel bounds; the global
// logical space keeps a bottom-left origin by flipping against the virtual
// screen union.
type Grabber struct {
	mu      sync.Mutex
	bounds  map[string]image.Rectangle // display id -> virtual-screen pixel bounds
	union   image.Rectangle            // virtual-screen bounds of all displays
	unionOK bool
}

// NewGrabber returns a provider that polls the OS screenshot service.
func NewGrabber() *Grabber {
	return &Grabber{bounds: make(map[string]image.Rectangle)}
}

// Displays enumerates the active displays fresh on every call.
func (g *Grabber) Displays() ([]geometry.Display, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplays
	}

	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}

	displays := make([]geometry.Display, 0, n)
	g.mu.Lock()
	g.bounds = make(map[string]image.Rectangle, n)
	g.union, g.unionOK = union, true
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		id := fmt.Sprintf("display-%d", i)
		g.bounds[id] = b
		displays = append(displays, geometry.Display{
			ID: id,
			Frame: geometry.LogicalRect{
				Space:  geometry.SpaceGlobal,
				X:      float64(b.Min.X - union.Min.X),
				Y:      float64(union.Max.Y - b.Max.Y),
				Width:  float64(b.Dx()),
				Height: float64(b.Dy()),
			},
			PixelWidth:  b.Dx(),
			PixelHeight: b.Dy(),
			ScaleX:      1,
			ScaleY:      1,
		})
	}
	g.mu.Unlock()
	return displays, nil
}

// FromVirtual converts a virtual-screen pixel position (top-left origin, as
// input hooks report the pointer) into the grabber's global logical space.
// ok is false until Displays has established the virtual-screen bounds.
func (g *Grabber) FromVirtual(px, py int) (x, y float64, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.unionOK {
		return 0, 0, false
	}
	return float64(px - g.union.Min.X), float64(g.union.Max.Y - py), true
}

// Permitted probes the capture service with a one-pixel grab.
func (g *Grabber) Permitted() bool {
	_, err := screenshot.Capture(0, 0, 1, 1)
	return err == nil
}

// RequestPermission re-probes; on platforms that gate screen recording the
// first capture attempt is what raises the system prompt.
func (g *Grabber) RequestPermission() bool {
	return g.Permitted()
}

// Start begins polling the descriptor's source rectangle. The polling
// grabber cannot exclude individual windows from the capture, so callers
// should keep the mirror window off the captured region; a non-empty
// exclusion list is logged and otherwise ignored.
func (g *Grabber) Start(ctx context.Context, desc Descriptor, opts StartOptions) (Handle, error) {
	g.mu.Lock()
	b, ok := g.bounds[desc.DisplayID]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown display %q", desc.DisplayID)
	}
	if len(opts.Exclude) > 0 {
		golog.Warnf("window exclusion unsupported by the polling grabber; move the mirror window off the captured region")
	}

	rect := image.Rect(
		b.Min.X+desc.Source.X,
		b.Min.Y+desc.Source.Y,
		b.Min.X+desc.Source.X+desc.Source.Width,
		b.Min.Y+desc.Source.Y+desc.Source.Height,
	)

	if _, err := screenshot.CaptureRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Min.Y+1)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	fps := desc.FrameRateCap
	if fps <= 0 {
		fps = DefaultFrameRateCap
	}

	runCtx, cancel := context.WithCancel(context.Background())
	h := &grabHandle{cancel: cancel, done: make(chan struct{})}
	go g.stream(runCtx, rect, fps, opts, h.done)
	golog.Debugf("grabber streaming %v at %d fps", rect, fps)
	return h, nil
}

func (g *Grabber) stream(ctx context.Context, rect image.Rectangle, fps int, opts StartOptions, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		img, err := screenshot.CaptureRect(rect)
		if err != nil {
			failures++
			if failures > maxConsecutiveFailures {
				if opts.OnError != nil {
					opts.OnError(fmt.Errorf("screen capture failed repeatedly: %w", err))
				}
				return
			}
			continue
		}
		failures = 0

		if opts.OnFrame != nil {
			// Each capture allocates its own buffer, so ownership moves to
			// the receiver with the frame.
			opts.OnFrame(Frame{
				Pix:    img.Pix,
				Width:  img.Rect.Dx(),
				Height: img.Rect.Dy(),
				Stride: img.Stride,
				Format: FormatRGBA8888,
			})
		}
	}
}

type grabHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (h *grabHandle) Stop(ctx context.Context) error {
	h.once.Do(h.cancel)
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
