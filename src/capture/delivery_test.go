package capture

import (
	"testing"
	"time"
)

func TestDeliveryQueueRunsJobsInOrder(t *testing.T) {
	q := newDeliveryQueue()
	defer q.Close()

	results := make(chan int, 3)
	for i := range 3 {
		waitFor(t, "slot free", func() bool {
			return q.Submit(func() { results <- i })
		})
	}

	for want := range 3 {
		select {
		case got := <-results:
			if got != want {
				t.Fatalf("jobs reordered: got %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("job never ran")
		}
	}
}

func TestDeliveryQueueDropsWhenBusy(t *testing.T) {
	q := newDeliveryQueue()
	defer q.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	if !q.Submit(func() { close(started); <-block }) {
		t.Fatal("first submit must succeed")
	}
	<-started

	// Worker is busy; the single slot takes one more.
	if !q.Submit(func() {}) {
		t.Fatal("second submit should occupy the slot")
	}
	if q.Submit(func() { t.Error("dropped job must never run") }) {
		t.Fatal("third submit should be dropped while the slot is full")
	}
	if q.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", q.Dropped())
	}
	close(block)
}

func TestDeliveryQueueRejectsAfterClose(t *testing.T) {
	q := newDeliveryQueue()
	q.Close()
	q.Close() // idempotent

	if q.Submit(func() {}) {
		t.Fatal("submit after close must be dropped")
	}
}
