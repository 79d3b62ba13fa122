package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kataras/golog"

	"github.com/jmac006/RegionMirror/src/geometry"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateTearingDown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateTearingDown:
		return "tearing-down"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// FrameSink receives frames on the delivery goroutine. Submit must not
// block; the renderer's mailbox satisfies this.
type FrameSink interface {
	Submit(Frame)
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Manager owns at most one capture session end to end: descriptor
// construction, provider start, frame delivery gating, and ordered
// teardown. Start and Stop are driven from the control goroutine; the
// frame and error callbacks arrive on provider-owned delivery contexts,
// and the teardown flag is the only state shared across them.
type Manager struct {
	provider Provider
	sink     FrameSink
	fpsCap   int

	mu         sync.Mutex
	state      State
	handle     Handle
	desc       Descriptor
	tearing    *atomic.Bool
	registered *atomic.Bool
	queue      *deliveryQueue
	done       chan struct{}
}

// NewManager wires a manager to its provider and frame sink. fpsCap bounds
// the requested frame rate; values <= 0 fall back to DefaultFrameRateCap.
func NewManager(provider Provider, sink FrameSink, fpsCap int) *Manager {
	return &Manager{provider: provider, sink: sink, fpsCap: fpsCap}
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Descriptor returns the descriptor of the current or most recent session.
func (m *Manager) Descriptor() Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.desc
}

// Start converts the selected global region into a capture descriptor for
// its owning display and begins streaming. Any previous session is fully
// torn down before the new one becomes Active. onError receives at most one
// asynchronous session failure; the session is not restarted automatically.
func (m *Manager) Start(ctx context.Context, region geometry.LogicalRect, d geometry.Display, exclude []string, onError func(error)) error {
	select {
	case <-m.Stop(ctx):
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	if m.state != StateIdle && m.state != StateClosed {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("capture session is %s, cannot start", state)
	}
	m.state = StateStarting
	tearing := new(atomic.Bool)
	registered := new(atomic.Bool)
	registered.Store(true)
	queue := newDeliveryQueue()
	desc := BuildDescriptor(region, d, m.fpsCap)
	m.tearing, m.registered, m.queue, m.desc = tearing, registered, queue, desc
	m.mu.Unlock()

	handle, err := m.provider.Start(ctx, desc, StartOptions{
		Exclude: exclude,
		OnFrame: m.frameFunc(tearing, registered, queue),
		OnError: m.errorFunc(tearing, registered, onError),
	})
	if err != nil {
		queue.Close()
		m.mu.Lock()
		m.state = StateClosed
		m.mu.Unlock()
		if errors.Is(err, ErrPermissionDenied) {
			return err
		}
		return fmt.Errorf("starting capture session: %w", err)
	}

	m.mu.Lock()
	if tearing.Load() {
		// A Stop arrived while the provider was still starting; the fresh
		// stream was never registered anywhere, so shut it down here.
		m.mu.Unlock()
		go func() {
			if err := handle.Stop(context.Background()); err != nil {
				golog.Warnf("capture teardown: %v", err)
			}
		}()
		queue.Close()
		return fmt.Errorf("capture session stopped while starting")
	}
	m.handle = handle
	m.state = StateActive
	m.mu.Unlock()
	golog.Infof("capture session active: %dx%d px at %d fps on %s",
		desc.Width, desc.Height, desc.FrameRateCap, desc.DisplayID)
	return nil
}

func (m *Manager) frameFunc(tearing, registered *atomic.Bool, queue *deliveryQueue) func(Frame) {
	return func(f Frame) {
		// Unregistration blocks new deliveries; the teardown flag blocks
		// in-flight deliveries that already passed the registration check.
		if !registered.Load() || tearing.Load() {
			return
		}
		queue.Submit(func() {
			if tearing.Load() {
				return
			}
			m.sink.Submit(f)
		})
	}
}

func (m *Manager) errorFunc(tearing, registered *atomic.Bool, onError func(error)) func(error) {
	return func(err error) {
		if tearing.Load() {
			// The session has already been discarded.
			golog.Debugf("late capture error after teardown: %v", err)
			return
		}
		golog.Errorf("capture session error: %v", err)
		tearing.Store(true)
		registered.Store(false)
		if onError != nil {
			onError(err)
		}
	}
}

// Stop is idempotent and safe from any goroutine, including while a Start
// is still inside the provider: the teardown flag is shared with that Start,
// which then discards its freshly-made stream instead of going Active.
// Teardown ordering is the
// flag first, then callback unregistration, then the asynchronous provider
// stop: unregistering prevents new deliveries, the flag stops in-flight
// ones that already passed the registration check, and only after both does
// teardown wait on the provider's own shutdown. The returned channel closes
// when that shutdown finishes; callers tearing down optimistically ignore it.
func (m *Manager) Stop(ctx context.Context) <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateIdle, StateClosed:
		return closedChan
	case StateTearingDown:
		return m.done
	}

	m.state = StateTearingDown
	m.tearing.Store(true)
	m.registered.Store(false)
	handle, queue := m.handle, m.queue
	done := make(chan struct{})
	m.done = done

	go func() {
		defer close(done)
		if handle != nil {
			if err := handle.Stop(ctx); err != nil {
				// Logged only: the session is being discarded regardless.
				golog.Warnf("capture teardown: %v", err)
			}
		}
		queue.Close()
		m.mu.Lock()
		m.state = StateClosed
		m.handle = nil
		m.mu.Unlock()
	}()
	return done
}
