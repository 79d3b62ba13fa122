// Package capture owns the capture-session lifecycle: descriptor
// construction from a selected region, the provider abstraction that
// streams frames, and the manager that guarantees at most one active
// session with race-free teardown.
package capture

import (
	"context"
	"errors"

	"github.com/jmac006/RegionMirror/src/geometry"
)

var (
	// ErrNoDisplays is returned when enumeration finds no active display.
	ErrNoDisplays = errors.New("no active displays found")
	// ErrPermissionDenied is returned when the OS refuses screen capture.
	// It is surfaced to the user and never retried automatically.
	ErrPermissionDenied = errors.New("screen capture permission denied")
)

// PixelFormat identifies the interleaved 32-bit layout of a frame buffer.
type PixelFormat int

const (
	FormatRGBA8888 PixelFormat = iota
	FormatBGRA8888
)

// Frame is one delivered pixel buffer. Providers hand over ownership of Pix:
// the buffer must stay valid after the delivery callback returns, because
// the manager forwards frames asynchronously to the renderer.
type Frame struct {
	Pix    []byte
	Width  int // device pixels
	Height int // device pixels
	Stride int // bytes per row
	Format PixelFormat
}

// StartOptions carries the per-session callbacks and exclusions.
// OnFrame and OnError are invoked on a delivery context chosen by the
// provider, never on the caller's goroutine.
type StartOptions struct {
	// Exclude lists application identifiers whose windows must be left out
	// of the capture, preventing recursive self-capture of the mirror.
	Exclude []string
	OnFrame func(Frame)
	OnError func(error)
}

// Provider is the narrow interface over the operating-system capture
// service: enumerate displays, gate on permission, stream frames.
type Provider interface {
	// Displays enumerates the currently attached displays. Callers
	// enumerate fresh per operation; the set may change at any time.
	Displays() ([]geometry.Display, error)

	// Permitted reports whether screen capture is currently allowed.
	Permitted() bool

	// RequestPermission asks the OS for capture access and reports the
	// outcome. Denial is terminal for the current attempt.
	RequestPermission() bool

	// Start begins streaming frames for the descriptor. The returned
	// handle stops the stream; ctx bounds only the start itself.
	Start(ctx context.Context, desc Descriptor, opts StartOptions) (Handle, error)
}

// Handle controls one running provider stream. Stop blocks until the
// provider's own asynchronous shutdown finishes or ctx expires.
type Handle interface {
	Stop(ctx context.Context) error
}
