package selector

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/geometry"
)

// Only one overlay may exist at a time; opening a new one closes the prior
// instance so an orphaned overlay can never keep swallowing input.
var (
	overlayMu   sync.Mutex
	overlayOpen fyne.Window
)

type selection struct {
	region geometry.LogicalRect
	ok     bool
}

type fyneSelector struct {
	app fyne.App
}

// NewOverlaySelector returns a Selector that runs a full-screen dimming
// overlay on the given display and resolves once the user completes or
// cancels a drag.
func NewOverlaySelector(app fyne.App) Selector {
	return &fyneSelector{app: app}
}

func (s *fyneSelector) Select(ctx context.Context, d geometry.Display) (geometry.LogicalRect, bool, error) {
	results := make(chan selection, 1)
	var win fyne.Window

	fyne.DoAndWait(func() {
		overlayMu.Lock()
		if overlayOpen != nil {
			golog.Debugf("selector: closing prior overlay before opening a new one")
			overlayOpen.Close()
		}
		win = s.app.NewWindow("Select a region")
		overlayOpen = win
		overlayMu.Unlock()

		done := func(region geometry.LogicalRect, ok bool) {
			select {
			case results <- selection{region: region, ok: ok}:
			default:
			}
		}

		ov := newOverlayWidget(d, func(region geometry.LogicalRect, ok bool) {
			done(region, ok)
			win.Close()
		})
		win.SetPadded(false)
		win.SetContent(ov)
		win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyEscape {
				ov.tracker.Cancel()
				done(geometry.LogicalRect{}, false)
				win.Close()
			}
		})
		// Closing the window by any other path counts as a cancel.
		win.SetOnClosed(func() {
			done(geometry.LogicalRect{}, false)
			overlayMu.Lock()
			if overlayOpen == win {
				overlayOpen = nil
			}
			overlayMu.Unlock()
		})
		win.SetFullScreen(true)
		win.Show()
	})

	select {
	case res := <-results:
		return res.region, !res.ok, nil
	case <-ctx.Done():
		fyne.Do(win.Close)
		return geometry.LogicalRect{}, true, ctx.Err()
	}
}

// overlayWidget draws the inverted-hole mask (everything outside the drag
// dimmed, the selection fully visible) and feeds pointer events into the
// tracker. Fyne positions are top-left oriented; the tracker works in the
// display's bottom-left logical space, so events flip here.
type overlayWidget struct {
	widget.BaseWidget

	tracker *Tracker
	finish  func(geometry.LogicalRect, bool)

	current  geometry.LogicalRect
	dragging bool
	finished bool
}

func newOverlayWidget(d geometry.Display, finish func(geometry.LogicalRect, bool)) *overlayWidget {
	w := &overlayWidget{finish: finish}
	w.tracker = NewTracker(d, func(r geometry.LogicalRect) {
		w.current = r
		w.dragging = true
		w.Refresh()
	})
	w.ExtendBaseWidget(w)
	return w
}

func (w *overlayWidget) flipY(pos fyne.Position) (float64, float64) {
	return float64(pos.X), float64(w.Size().Height - pos.Y)
}

func (w *overlayWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := w.flipY(ev.Position)
	w.tracker.PointerDown(x, y)
}

func (w *overlayWidget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || w.finished {
		return
	}
	x, y := w.flipY(ev.Position)
	region, ok := w.tracker.PointerUp(x, y)
	w.finished = true
	w.finish(region, ok)
}

func (w *overlayWidget) MouseIn(*desktop.MouseEvent) {}
func (w *overlayWidget) MouseOut()                   {}

func (w *overlayWidget) MouseMoved(ev *desktop.MouseEvent) {
	x, y := w.flipY(ev.Position)
	w.tracker.PointerMove(x, y)
}

func (w *overlayWidget) CreateRenderer() fyne.WidgetRenderer {
	dim := color.NRGBA{A: 0x99}
	r := &overlayRenderer{widget: w}
	for i := range r.mask {
		r.mask[i] = canvas.NewRectangle(dim)
	}
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	r.border.StrokeWidth = 1
	return r
}

type overlayRenderer struct {
	widget *overlayWidget
	mask   [4]*canvas.Rectangle // top, bottom, left, right strips
	border *canvas.Rectangle
}

func (r *overlayRenderer) Layout(size fyne.Size) {
	if !r.widget.dragging {
		r.mask[0].Move(fyne.NewPos(0, 0))
		r.mask[0].Resize(size)
		for _, m := range r.mask[1:] {
			m.Resize(fyne.NewSize(0, 0))
		}
		r.border.Resize(fyne.NewSize(0, 0))
		return
	}

	sel := r.widget.current
	x := float32(sel.X)
	y := size.Height - float32(sel.Y+sel.Height) // back to top-left
	wd := float32(sel.Width)
	ht := float32(sel.Height)

	r.mask[0].Move(fyne.NewPos(0, 0))
	r.mask[0].Resize(fyne.NewSize(size.Width, y))
	r.mask[1].Move(fyne.NewPos(0, y+ht))
	r.mask[1].Resize(fyne.NewSize(size.Width, size.Height-y-ht))
	r.mask[2].Move(fyne.NewPos(0, y))
	r.mask[2].Resize(fyne.NewSize(x, ht))
	r.mask[3].Move(fyne.NewPos(x+wd, y))
	r.mask[3].Resize(fyne.NewSize(size.Width-x-wd, ht))

	r.border.Move(fyne.NewPos(x, y))
	r.border.Resize(fyne.NewSize(wd, ht))
}

func (r *overlayRenderer) MinSize() fyne.Size { return fyne.NewSize(0, 0) }

func (r *overlayRenderer) Refresh() {
	r.Layout(r.widget.Size())
	for _, m := range r.mask {
		canvas.Refresh(m)
	}
	canvas.Refresh(r.border)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.mask[0], r.mask[1], r.mask[2], r.mask[3], r.border}
}

func (r *overlayRenderer) Destroy() {}
