package mirror

import (
	"sync"

	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/geometry"
)

// BorderIndicator marks the captured region on the source display while a
// mirror session runs. Show receives the region in global logical
// coordinates together with the display that owns it.
type BorderIndicator interface {
	Show(region geometry.LogicalRect, d geometry.Display)
	Hide()
}

// NopBorder disables the indicator (SHOW_BORDER=false).
type NopBorder struct{}

func (NopBorder) Show(geometry.LogicalRect, geometry.Display) {}
func (NopBorder) Hide()                                       {}

// LogBorder records indicator placement in the log. The toolkit cannot place
// undecorated windows at arbitrary global coordinates on every platform, so
// the default indicator reports placement instead of drawing it; the
// placement itself is still computed and ordered by the orchestrator.
type LogBorder struct {
	mu      sync.Mutex
	visible bool
}

func (b *LogBorder) Show(region geometry.LogicalRect, d geometry.Display) {
	b.mu.Lock()
	b.visible = true
	b.mu.Unlock()
	golog.Infof("capture border at global (%.1f, %.1f) %.0fx%.0f on %s",
		region.X, region.Y, region.Width, region.Height, d.ID)
}

func (b *LogBorder) Hide() {
	b.mu.Lock()
	was := b.visible
	b.visible = false
	b.mu.Unlock()
	if was {
		golog.Debugf("capture border removed")
	}
}

// Visible reports whether the indicator is currently shown.
func (b *LogBorder) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}
