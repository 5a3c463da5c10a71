package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// LatencySnapshot is a point-in-time aggregate of operation latencies
// within the rolling window.
type LatencySnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Snapshot aggregates per-operation counters and recent latencies.
type Snapshot struct {
	Counts  map[string]int64 `json:"counts"`
	Latency LatencySnapshot  `json:"latency"`
}

// Usage tracks how often each operation ran and how long calls took,
// keeping latency samples within a rolling window.
type Usage struct {
	mu      sync.Mutex
	counts  map[string]int64
	samples []sample
	maxAge  time.Duration
}

func NewUsage(maxAge time.Duration) *Usage {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Usage{
		counts:  make(map[string]int64),
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record counts one completed operation and stores its duration.
func (u *Usage) Record(op string, d time.Duration) {
	durationMs := d.Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.counts[op]++
	u.pruneLocked(now)
	u.samples = append(u.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (u *Usage) Snapshot() Snapshot {
	now := time.Now()

	u.mu.Lock()
	defer u.mu.Unlock()

	counts := make(map[string]int64, len(u.counts))
	for op, n := range u.counts {
		counts[op] = n
	}

	u.pruneLocked(now)
	if len(u.samples) == 0 {
		return Snapshot{Counts: counts}
	}

	values := make([]int64, 0, len(u.samples))
	var sum int64
	for _, sm := range u.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Counts: counts,
		Latency: LatencySnapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		},
	}
}

func (u *Usage) pruneLocked(now time.Time) {
	cutoff := now.Add(-u.maxAge)
	writeIdx := 0
	for _, sm := range u.samples {
		if !sm.timestamp.Before(cutoff) {
			u.samples[writeIdx] = sm
			writeIdx++
		}
	}
	u.samples = u.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
