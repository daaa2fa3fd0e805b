package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type pollStats struct {
	cycles  int
	errors  int
	changed int
}

// Recorder captures in-memory counters about scoreboard API calls and live
// refresh activity, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*endpointStats
	poll      pollStats
	discarded int
	liveConns int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*endpointStats),
		otel:  otel,
	}
}

// RecordAPICall increments counters for one REST endpoint call and stores the last observed latency.
func (r *Recorder) RecordAPICall(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAPICall(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an endpoint answered 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordPollerCycle tracks one live refresh tick, how many games it changed, and whether it failed.
func (r *Recorder) RecordPollerCycle(duration time.Duration, changed int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.poll.cycles++
	if err != nil {
		r.poll.errors++
	} else {
		r.poll.changed += changed
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(duration, changed, err)
	}
}

// RecordPredictionDiscarded counts win-probability responses dropped as stale.
func (r *Recorder) RecordPredictionDiscarded() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.discarded++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.predictionsDiscarded, 1)
	}
}

// RecordLiveConnection adjusts the number of open live websocket streams by delta.
func (r *Recorder) RecordLiveConnection(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.liveConns += delta
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.liveConnections.Add(r.otel.ctx, int64(delta))
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the counters for one endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// PollSnapshot summarizes live refresh activity.
type PollSnapshot struct {
	Cycles             int
	Errors             int
	Changed            int
	DiscardedPredicted int
	LiveConnections    int
}

func (r *Recorder) PollSnapshot() PollSnapshot {
	if r == nil {
		return PollSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return PollSnapshot{
		Cycles:             r.poll.cycles,
		Errors:             r.poll.errors,
		Changed:            r.poll.changed,
		DiscardedPredicted: r.discarded,
		LiveConnections:    r.liveConns,
	}
}

// callers hold r.mu.
func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	stats, ok := r.stats[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.stats[endpoint] = stats
	}
	return stats
}

func pollOutcome(changed int, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case changed > 0:
		return OutcomeChanged
	default:
		return OutcomeUnchanged
	}
}
