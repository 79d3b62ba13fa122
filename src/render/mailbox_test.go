package render

import (
	"testing"
	"time"
)

func TestMailboxDeliversLatest(t *testing.T) {
	m := NewMailbox[int]()

	if !m.Put(1) {
		t.Fatal("first put into an empty mailbox must succeed")
	}
	// Nothing consumed yet: 1 is overwritten by 2, then 2 by 3.
	if m.Put(2) {
		t.Fatal("second put should report an overwrite")
	}
	m.Put(3)

	select {
	case got := <-m.Receive():
		if got != 3 {
			t.Fatalf("consumer got %d, want the latest value 3", got)
		}
	default:
		t.Fatal("mailbox empty after puts")
	}

	if m.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", m.Dropped())
	}
}

func TestMailboxClearDiscardsPendingValue(t *testing.T) {
	m := NewMailbox[int]()
	m.Put(7)
	m.Clear()

	select {
	case v := <-m.Receive():
		t.Fatalf("cleared mailbox still delivered %d", v)
	default:
	}
	if m.Dropped() != 0 {
		t.Fatalf("cleared value counted as dropped: %d", m.Dropped())
	}

	// Clearing an empty mailbox is a no-op and the mailbox stays usable.
	m.Clear()
	if !m.Put(8) {
		t.Fatal("put into a cleared mailbox must succeed")
	}
}

func TestMailboxNeverBlocksProducer(t *testing.T) {
	m := NewMailbox[int]()
	done := make(chan struct{})
	go func() {
		for i := range 10000 {
			m.Put(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer blocked on a full mailbox")
	}
}

func TestMailboxConcurrentConsumerSeesMonotonicValues(t *testing.T) {
	m := NewMailbox[int]()
	const n = 5000

	go func() {
		for i := 1; i <= n; i++ {
			m.Put(i)
		}
	}()

	// Values may be skipped but never reordered.
	last := 0
	for last < n {
		select {
		case v := <-m.Receive():
			if v <= last {
				t.Fatalf("value went backwards: %d after %d", v, last)
			}
			last = v
		case <-time.After(2 * time.Second):
			t.Fatalf("consumer starved at %d", last)
		}
	}
}
