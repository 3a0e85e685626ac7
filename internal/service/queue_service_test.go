package service

import "testing"

func TestQueueService_FIFOPairing(t *testing.T) {
	q := NewQueueService()

	for _, p := range []string{"alice", "bob", "carol", "dave"} {
		if !q.Enqueue(p) {
			t.Fatalf("Enqueue(%q) returned false", p)
		}
	}

	p1, p2, ok := q.TryPair()
	if !ok || p1 != "alice" || p2 != "bob" {
		t.Errorf("First pair = (%q, %q, %v), want (alice, bob, true)", p1, p2, ok)
	}

	p1, p2, ok = q.TryPair()
	if !ok || p1 != "carol" || p2 != "dave" {
		t.Errorf("Second pair = (%q, %q, %v), want (carol, dave, true)", p1, p2, ok)
	}

	if _, _, ok := q.TryPair(); ok {
		t.Error("TryPair on an empty queue should return false")
	}
}

func TestQueueService_SinglePlayerWaits(t *testing.T) {
	q := NewQueueService()
	q.Enqueue("alice")

	if _, _, ok := q.TryPair(); ok {
		t.Error("A single queued player must keep waiting")
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

func TestQueueService_DuplicateJoinIgnored(t *testing.T) {
	q := NewQueueService()

	if !q.Enqueue("alice") {
		t.Fatal("First Enqueue should succeed")
	}
	if q.Enqueue("alice") {
		t.Error("Second Enqueue for the same player should be rejected")
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

func TestQueueService_DequeueRemovesFromMiddle(t *testing.T) {
	q := NewQueueService()
	for _, p := range []string{"alice", "bob", "carol"} {
		q.Enqueue(p)
	}

	q.Dequeue("bob")
	q.Dequeue("nobody") // no-op

	p1, p2, ok := q.TryPair()
	if !ok || p1 != "alice" || p2 != "carol" {
		t.Errorf("Pair after dequeue = (%q, %q, %v), want (alice, carol, true)", p1, p2, ok)
	}
}
