package telemetry

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	val atomic.Int64
}

func (c *Counter) Inc()         { c.val.Add(1) }
func (c *Counter) Add(n int64)  { c.val.Add(n) }
func (c *Counter) Value() int64 { return c.val.Load() }

type Gauge struct {
	val atomic.Int64
}

func (g *Gauge) Set(v int64)  { g.val.Store(v) }
func (g *Gauge) Inc()         { g.val.Add(1) }
func (g *Gauge) Dec()         { g.val.Add(-1) }
func (g *Gauge) Value() int64 { return g.val.Load() }

// LatencyTracker keeps a sliding window of the most recent samples.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	maxKeep int
}

func NewLatencyTracker(maxKeep int) *LatencyTracker {
	return &LatencyTracker{maxKeep: maxKeep}
}

func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.samples = append(lt.samples, d)
	if len(lt.samples) > lt.maxKeep {
		lt.samples = lt.samples[len(lt.samples)-lt.maxKeep:]
	}
}

func (lt *LatencyTracker) P50() time.Duration { return lt.percentile(0.50) }
func (lt *LatencyTracker) P99() time.Duration { return lt.percentile(0.99) }

func (lt *LatencyTracker) percentile(p float64) time.Duration {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if len(lt.samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(lt.samples))
	copy(sorted, lt.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// Metrics is the global metrics registry.
var Metrics = struct {
	Requests          Counter
	RequestErrors     Counter
	Projections       Counter
	TriggersFired     Counter
	NonFinite         Counter
	AlertsSent        Counter
	AlertsSuppressed  Counter
	AlertErrors       Counter
	JournalWrites     Counter
	JournalErrors     Counter
	StreamPublishes   Counter
	StreamErrors      Counter
	FanoutClients     Gauge
	FanoutDrops       Counter
	HandlerErrors     Counter
	ProjectionLatency *LatencyTracker
}{
	ProjectionLatency: NewLatencyTracker(1000),
}

// Snapshot is a point-in-time copy of Metrics suitable for JSON.
type Snapshot struct {
	Requests         int64  `json:"requests"`
	RequestErrors    int64  `json:"request_errors"`
	Projections      int64  `json:"projections"`
	TriggersFired    int64  `json:"triggers_fired"`
	NonFinite        int64  `json:"non_finite"`
	AlertsSent       int64  `json:"alerts_sent"`
	AlertsSuppressed int64  `json:"alerts_suppressed"`
	AlertErrors      int64  `json:"alert_errors"`
	JournalWrites    int64  `json:"journal_writes"`
	JournalErrors    int64  `json:"journal_errors"`
	StreamPublishes  int64  `json:"stream_publishes"`
	StreamErrors     int64  `json:"stream_errors"`
	FanoutClients    int64  `json:"fanout_clients"`
	FanoutDrops      int64  `json:"fanout_drops"`
	HandlerErrors    int64  `json:"handler_errors"`
	ProjectionP50    string `json:"projection_p50"`
	ProjectionP99    string `json:"projection_p99"`
}

func TakeSnapshot() Snapshot {
	m := &Metrics
	return Snapshot{
		Requests:         m.Requests.Value(),
		RequestErrors:    m.RequestErrors.Value(),
		Projections:      m.Projections.Value(),
		TriggersFired:    m.TriggersFired.Value(),
		NonFinite:        m.NonFinite.Value(),
		AlertsSent:       m.AlertsSent.Value(),
		AlertsSuppressed: m.AlertsSuppressed.Value(),
		AlertErrors:      m.AlertErrors.Value(),
		JournalWrites:    m.JournalWrites.Value(),
		JournalErrors:    m.JournalErrors.Value(),
		StreamPublishes:  m.StreamPublishes.Value(),
		StreamErrors:     m.StreamErrors.Value(),
		FanoutClients:    m.FanoutClients.Value(),
		FanoutDrops:      m.FanoutDrops.Value(),
		HandlerErrors:    m.HandlerErrors.Value(),
		ProjectionP50:    m.ProjectionLatency.P50().String(),
		ProjectionP99:    m.ProjectionLatency.P99().String(),
	}
}
