package monitor

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// operationStats groups the timer and error counter of one operation
type operationStats struct {
	timer  *Timer
	errors *Counter
}

// Collector times scan operations. The zero value is not usable; call New.
// A nil *Collector ignores every call, so callers can pass one through
// unconditionally.
type Collector struct {
	mu         sync.RWMutex
	operations map[OperationType]*operationStats
	started    time.Time
	now        func() time.Time
}

// New creates a collector with a timer for each known operation
func New() *Collector {
	c := &Collector{
		operations: make(map[OperationType]*operationStats, len(Operations)),
		now:        time.Now,
	}
	for _, op := range Operations {
		c.operations[op] = newOperationStats(op)
	}
	c.started = c.now()
	return c
}

func newOperationStats(op OperationType) *operationStats {
	return &operationStats{
		timer:  NewTimer(string(op)),
		errors: NewCounter(string(op) + "_errors"),
	}
}

// Track runs fn and records its duration and outcome under operation
func (c *Collector) Track(operation OperationType, fn func() error) error {
	if c == nil {
		return fn()
	}

	start := c.now()
	err := fn()
	c.Record(operation, c.now().Sub(start), err)
	return err
}

// Record adds one measurement for operation
func (c *Collector) Record(operation OperationType, d time.Duration, err error) {
	if c == nil {
		return
	}

	c.mu.RLock()
	stats, ok := c.operations[operation]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		if stats, ok = c.operations[operation]; !ok {
			stats = newOperationStats(operation)
			c.operations[operation] = stats
		}
		c.mu.Unlock()
	}

	stats.timer.Record(d)
	if err != nil {
		stats.errors.Inc()
	}
}

// GetSnapshot returns the current metrics. Operations that never ran are
// left out; known operations come first in their fixed order.
func (c *Collector) GetSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	snapshot := MetricsSnapshot{
		Timestamp:  now,
		Uptime:     now.Sub(c.started),
		Memory:     collectMemory(),
		Goroutines: runtime.NumGoroutine(),
	}

	seen := make(map[OperationType]bool, len(c.operations))
	appendOp := func(op OperationType) {
		seen[op] = true
		stats, ok := c.operations[op]
		if !ok || stats.timer.Count() == 0 {
			return
		}
		errCount := stats.errors.Get()
		snapshot.Operations = append(snapshot.Operations, OperationMetrics{
			Operation:    op,
			Count:        stats.timer.Count(),
			TotalTime:    stats.timer.TotalTime(),
			MinTime:      stats.timer.MinTime(),
			MaxTime:      stats.timer.MaxTime(),
			ErrorCount:   errCount,
			SuccessCount: stats.timer.Count() - errCount,
		})
	}

	for _, op := range Operations {
		appendOp(op)
	}
	var extra []OperationType
	for op := range c.operations {
		if !seen[op] {
			extra = append(extra, op)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, op := range extra {
		appendOp(op)
	}

	return snapshot
}

// Reset clears every measurement and restarts the uptime clock
func (c *Collector) Reset() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stats := range c.operations {
		stats.timer.Reset()
		stats.errors.Reset()
	}
	c.started = c.now()
}
