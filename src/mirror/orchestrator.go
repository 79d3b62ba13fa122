// Package mirror is the top-level controller: it runs region selection,
// resolves the target display, starts exactly one capture session, places
// the border indicator, and guarantees ordered idempotent teardown.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/capture"
	"github.com/jmac006/RegionMirror/src/geometry"
	"github.com/jmac006/RegionMirror/src/selector"
)

// ErrDisplayMatch is returned when the selection's owning display cannot be
// found in a fresh provider enumeration. No fallback display is guessed.
var ErrDisplayMatch = errors.New("could not find a matching display to capture")

// State is the orchestrator's lifecycle state.
type State int

const (
	StateNoSelection State = iota
	StateSelecting
	StateResolving
	StateMirroring
)

func (s State) String() string {
	switch s {
	case StateNoSelection:
		return "no-selection"
	case StateSelecting:
		return "selecting"
	case StateResolving:
		return "resolving"
	case StateMirroring:
		return "mirroring"
	}
	return "unknown"
}

// Session is the capture lifecycle the orchestrator drives; *capture.Manager
// satisfies it.
type Session interface {
	Start(ctx context.Context, region geometry.LogicalRect, d geometry.Display, exclude []string, onError func(error)) error
	Stop(ctx context.Context) <-chan struct{}
}

// Notifier surfaces user-visible errors as a single modal-style notice with
// a human-readable message. No structured retry.
type Notifier interface {
	Notify(title, message string)
}

const noticeTitle = "RegionMirror"

// Config wires the orchestrator's collaborators.
type Config struct {
	Provider capture.Provider
	Selector selector.Selector
	Session  Session
	Border   BorderIndicator
	Notifier Notifier

	// Pointer reports the current pointer position in global logical
	// coordinates, so the selection overlay opens on the display under the
	// pointer. ok=false (or a nil Pointer) falls back to the first display.
	Pointer func() (x, y float64, ok bool)

	// Exclude lists this application's own window identifiers, kept out of
	// the capture to prevent recursive self-capture.
	Exclude []string
}

// Orchestrator holds at most one handle per resource (selection overlay,
// capture session, border indicator) and tears them down as one ordered
// sequence. All state transitions run on the control goroutine inside Run;
// external triggers only post requests.
type Orchestrator struct {
	cfg Config

	mu        sync.Mutex
	state     State
	observers []func(mirroring bool)

	requests    chan struct{}
	closes      chan struct{}
	sessionErrs chan error
}

// New builds an orchestrator. Nil Border and Notifier fall back to no-ops.
func New(cfg Config) *Orchestrator {
	if cfg.Border == nil {
		cfg.Border = NopBorder{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = nopNotifier{}
	}
	return &Orchestrator{
		cfg:         cfg,
		requests:    make(chan struct{}, 1),
		closes:      make(chan struct{}, 1),
		sessionErrs: make(chan error, 1),
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// State reports the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Observe registers a callback invoked with true when mirroring starts and
// false when it ends. Callbacks run on the control goroutine.
func (o *Orchestrator) Observe(fn func(mirroring bool)) {
	o.mu.Lock()
	o.observers = append(o.observers, fn)
	o.mu.Unlock()
}

// BeginSelection requests a new region selection. Safe from any goroutine;
// a request already pending is not queued twice.
func (o *Orchestrator) BeginSelection() {
	select {
	case o.requests <- struct{}{}:
	default:
	}
}

// EndMirroring requests teardown of the active session, typically from the
// mirror window's close handler. Idempotent and safe from any goroutine.
func (o *Orchestrator) EndMirroring() {
	select {
	case o.closes <- struct{}{}:
	default:
	}
}

// Run processes selection requests, window closes, and asynchronous session
// errors until ctx is cancelled. It is the only goroutine that mutates
// orchestrator state.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			o.teardown(ctx)
			return ctx.Err()
		case <-o.requests:
			o.handleRequest(ctx)
		case <-o.closes:
			o.teardown(ctx)
		case err := <-o.sessionErrs:
			o.handleSessionError(ctx, err)
		}
	}
}

// handleRequest runs one full selection-to-mirroring flow. Every failure
// notifies the user (except a silently discarded degenerate selection) and
// returns the orchestrator to NoSelection.
func (o *Orchestrator) handleRequest(ctx context.Context) {
	// At most one active operation: a running session ends before the new
	// selection opens.
	o.teardown(ctx)

	if !o.cfg.Provider.Permitted() && !o.cfg.Provider.RequestPermission() {
		o.fail("Screen capture permission is required. Grant access in system settings and try again.")
		return
	}

	displays, err := o.cfg.Provider.Displays()
	if err != nil || len(displays) == 0 {
		o.fail("No display available for capture.")
		return
	}

	chosen := o.pickDisplay(displays)
	o.setState(StateSelecting)
	region, cancelled, err := o.cfg.Selector.Select(ctx, chosen)
	if err != nil {
		o.fail(fmt.Sprintf("Selection failed: %v", err))
		return
	}
	if cancelled {
		// Degenerate or user-aborted selections are discarded silently.
		o.setState(StateNoSelection)
		return
	}

	o.setState(StateResolving)
	target, err := o.resolveDisplay(chosen.ID)
	if err != nil {
		o.fail("Could not find a matching display to capture")
		return
	}

	err = o.cfg.Session.Start(ctx, region, target, o.cfg.Exclude, func(sessionErr error) {
		select {
		case o.sessionErrs <- sessionErr:
		default:
		}
	})
	if err != nil {
		if errors.Is(err, capture.ErrPermissionDenied) {
			o.fail("Screen capture permission is required. Grant access in system settings and try again.")
		} else {
			o.fail(fmt.Sprintf("Could not start capture: %v", err))
		}
		return
	}

	o.cfg.Border.Show(region, target)
	o.setState(StateMirroring)
	o.notifyObservers(true)
	golog.Infof("mirroring (%.1f, %.1f) %.0fx%.0f on %s",
		region.X, region.Y, region.Width, region.Height, target.ID)
}

// pickDisplay chooses the display whose global frame contains the pointer,
// so the overlay opens on the screen the user is pointing at and snaps with
// that screen's per-axis scale. Without a pointer fix the first display
// hosts the overlay.
func (o *Orchestrator) pickDisplay(displays []geometry.Display) geometry.Display {
	if o.cfg.Pointer != nil {
		if x, y, ok := o.cfg.Pointer(); ok {
			for _, d := range displays {
				if d.Frame.Contains(x, y) {
					return d
				}
			}
		}
	}
	return displays[0]
}

// resolveDisplay matches the selection's owning display by identity against
// a fresh enumeration; the display set may have changed since selection.
func (o *Orchestrator) resolveDisplay(id string) (geometry.Display, error) {
	displays, err := o.cfg.Provider.Displays()
	if err != nil {
		return geometry.Display{}, fmt.Errorf("enumerating displays: %w", err)
	}
	for _, d := range displays {
		if d.ID == id {
			return d, nil
		}
	}
	return geometry.Display{}, ErrDisplayMatch
}

func (o *Orchestrator) handleSessionError(ctx context.Context, err error) {
	if o.State() != StateMirroring {
		golog.Debugf("late session error after teardown: %v", err)
		return
	}
	o.teardown(ctx)
	o.cfg.Notifier.Notify(noticeTitle, fmt.Sprintf("Capture stopped: %v", err))
}

// teardown ends an active session in order: mark closing, stop the capture
// session, remove the border indicator, notify observers. Teardown is
// optimistic: the session's asynchronous shutdown finishes in the background
// while the orchestrator already reports NoSelection.
func (o *Orchestrator) teardown(ctx context.Context) {
	o.mu.Lock()
	if o.state != StateMirroring {
		o.mu.Unlock()
		return
	}
	o.state = StateNoSelection
	o.mu.Unlock()

	o.cfg.Session.Stop(ctx)
	o.cfg.Border.Hide()
	o.notifyObservers(false)
	golog.Infof("mirroring ended")
}

func (o *Orchestrator) fail(message string) {
	o.setState(StateNoSelection)
	o.cfg.Notifier.Notify(noticeTitle, message)
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) notifyObservers(mirroring bool) {
	o.mu.Lock()
	observers := make([]func(bool), len(o.observers))
	copy(observers, o.observers)
	o.mu.Unlock()
	for _, fn := range observers {
		fn(mirroring)
	}
}
