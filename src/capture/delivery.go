package capture

import (
	"sync"
	"sync/atomic"
)

// deliveryQueue runs frame hand-offs on a dedicated goroutine with a
// single-slot buffer (strict back-pressure). Submit never blocks: when the
// slot is occupied the new job is dropped, because for a live mirror a
// stale frame is worse than a skipped one.
type deliveryQueue struct {
	mu      sync.Mutex
	jobs    chan func()
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

func newDeliveryQueue() *deliveryQueue {
	q := &deliveryQueue{jobs: make(chan func(), 1)}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for job := range q.jobs {
			job()
		}
	}()
	return q
}

// Submit enqueues a job if the single slot is free. Returns false if the
// job was dropped, either under back-pressure or because the queue closed.
func (q *deliveryQueue) Submit(job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.dropped.Add(1)
		return false
	}
	select {
	case q.jobs <- job:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Dropped reports how many jobs were skipped.
func (q *deliveryQueue) Dropped() uint64 { return q.dropped.Load() }

// Close stops the queue after draining the pending job, if any. Submissions
// racing with Close are dropped rather than delivered.
func (q *deliveryQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
