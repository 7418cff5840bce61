package metrics

import (
	"sync"
	"time"
)

type sportStats struct {
	attempts        int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream
// calls, keyed by sport. It is intentionally simple so it can be
// swapped for a real backend later.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*sportStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sportStats),
		otel:  otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call and
// stores the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(sport string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.record(sport, func(stats *sportStats) {
		stats.attempts++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(sport, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and
// stores the last Retry-After.
func (r *Recorder) RecordRateLimit(sport string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.record(sport, func(stats *sportStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(sport, retryAfter)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// UpstreamAttempts returns the total attempts recorded for a sport.
func (r *Recorder) UpstreamAttempts(sport string) int {
	return r.Snapshot(sport).Attempts
}

// UpstreamErrors returns the total failed attempts recorded for a sport.
func (r *Recorder) UpstreamErrors(sport string) int {
	return r.Snapshot(sport).Errors
}

// RateLimitHits returns the number of rate limit events seen for a sport.
func (r *Recorder) RateLimitHits(sport string) int {
	return r.Snapshot(sport).RateLimitHits
}

// LastCallLatency returns the last recorded latency for a sport's calls.
func (r *Recorder) LastCallLatency(sport string) time.Duration {
	return r.Snapshot(sport).LastCallLatency
}

// Snapshot is a copy of the current stats for one sport.
type Snapshot struct {
	Attempts        int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(sport string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(sport)
	return Snapshot{
		Attempts:        stats.attempts,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// record runs the mutation while holding the lock; the recorder is
// shared by every in-flight request.
func (r *Recorder) record(sport string, mutate func(*sportStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[sport]
	if !ok {
		stats = &sportStats{}
		r.stats[sport] = stats
	}
	mutate(stats)
}

func (r *Recorder) snapshot(sport string) sportStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[sport]; ok && stats != nil {
		return *stats
	}
	return sportStats{}
}
