package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecordUpstreamAttempt(t *testing.T) {
	r := NewRecorder()

	r.RecordUpstreamAttempt("football", 120*time.Millisecond, nil)
	r.RecordUpstreamAttempt("football", 80*time.Millisecond, errors.New("boom"))
	r.RecordUpstreamAttempt("nba", 50*time.Millisecond, nil)

	if got := r.UpstreamAttempts("football"); got != 2 {
		t.Fatalf("expected 2 football attempts, got %d", got)
	}
	if got := r.UpstreamErrors("football"); got != 1 {
		t.Fatalf("expected 1 football error, got %d", got)
	}
	if got := r.UpstreamAttempts("nba"); got != 1 {
		t.Fatalf("expected 1 nba attempt, got %d", got)
	}
	if got := r.LastCallLatency("football"); got != 80*time.Millisecond {
		t.Fatalf("expected the last latency to win, got %v", got)
	}
}

func TestRecordRateLimit(t *testing.T) {
	r := NewRecorder()

	r.RecordRateLimit("nba", 30*time.Second)
	r.RecordRateLimit("nba", 0)

	snap := r.Snapshot("nba")
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 30*time.Second {
		t.Fatalf("expected a zero Retry-After to be ignored, got %v", snap.LastRetryAfter)
	}
}

func TestRecorderIsSafeForConcurrentUse(t *testing.T) {
	r := NewRecorder()

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				r.RecordUpstreamAttempt("football", time.Millisecond, nil)
				r.RecordRateLimit("football", time.Second)
			}
		}()
	}
	wg.Wait()

	if got := r.UpstreamAttempts("football"); got != goroutines*perGoroutine {
		t.Fatalf("expected %d attempts, got %d", goroutines*perGoroutine, got)
	}
	if got := r.RateLimitHits("football"); got != goroutines*perGoroutine {
		t.Fatalf("expected %d rate limit hits, got %d", goroutines*perGoroutine, got)
	}
}

func TestSnapshotUnknownSportIsZero(t *testing.T) {
	r := NewRecorder()
	if snap := r.Snapshot("handball"); snap != (Snapshot{}) {
		t.Fatalf("expected a zero snapshot, got %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordUpstreamAttempt("football", time.Second, nil)
	r.RecordRateLimit("football", time.Second)
	r.RecordHTTPRequest("GET", "/api/live", 200, time.Millisecond)
	if snap := r.Snapshot("football"); snap != (Snapshot{}) {
		t.Fatalf("expected a zero snapshot from a nil recorder, got %+v", snap)
	}
}
