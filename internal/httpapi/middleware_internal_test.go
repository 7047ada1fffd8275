package httpapi

import (
	"testing"
	"time"
)

func TestIPLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	l := newIPLimiter(60)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	first := l.get("10.0.0.1")
	l.get("10.0.0.2")
	if len(l.clients) != 2 {
		t.Fatalf("clients = %d, want 2", len(l.clients))
	}

	// 10.0.0.2 stays active; 10.0.0.1 goes quiet.
	now = now.Add(limiterIdleTTL / 2)
	l.get("10.0.0.2")
	now = now.Add(limiterIdleTTL / 2)
	l.get("10.0.0.3")

	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Error("idle client was not evicted")
	}
	if _, ok := l.clients["10.0.0.2"]; !ok {
		t.Error("active client was evicted")
	}
	if len(l.clients) != 2 {
		t.Errorf("clients = %d, want 2", len(l.clients))
	}
	if l.get("10.0.0.1") == first {
		t.Error("evicted client kept its old bucket")
	}
}

func TestIPLimiter_SameClientSameBucket(t *testing.T) {
	l := newIPLimiter(60)
	if l.get("10.0.0.1") != l.get("10.0.0.1") {
		t.Error("one client got two buckets")
	}
}
