// Package render owns the destination surface and the pixel-exact
// presentation path: frames arrive through a capacity-1 overwrite-latest
// mailbox and are placed on the surface with no scaling filter, the
// surface's backing store always matching the frame's device-pixel size.
package render

import (
	"sync"
	"sync/atomic"
)

// Mailbox is the bounded hand-off between the capture delivery context and
// the rendering context. Capacity is one and Put overwrites: the renderer
// always wakes to the newest value, older pending values are dropped rather
// than queued, and nothing is ever reordered.
type Mailbox[T any] struct {
	mu      sync.Mutex
	slot    chan T
	dropped atomic.Uint64
}

// NewMailbox returns an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{slot: make(chan T, 1)}
}

// Put stores v without blocking. When a value is already pending it is
// replaced and Put returns false.
func (m *Mailbox[T]) Put(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case m.slot <- v:
		return true
	default:
	}
	select {
	case <-m.slot:
		m.dropped.Add(1)
	default:
		// Consumer took it between the two selects; the slot is free now.
	}
	m.slot <- v
	return false
}

// Receive exposes the consumer side.
func (m *Mailbox[T]) Receive() <-chan T { return m.slot }

// Clear discards a pending unconsumed value, if any. Used when the producer
// side shuts down; a cleared value is discarded, not dropped, so it does not
// count against the overwrite statistics.
func (m *Mailbox[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-m.slot:
	default:
	}
}

// Dropped counts values that were overwritten before being consumed.
func (m *Mailbox[T]) Dropped() uint64 { return m.dropped.Load() }
