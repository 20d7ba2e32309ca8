package monitor

import (
	"runtime"
	"sync/atomic"
	"time"
)

// OperationType names a step of a scan that is timed
type OperationType string

const (
	OperationAnalyze OperationType = "analyze" // provider round trip
	OperationFormat  OperationType = "format"  // report rendering and formatting
	OperationWrite   OperationType = "write"   // stdout or --output-file
	OperationCopy    OperationType = "copy"    // clipboard
)

// Operations lists the tracked operations in report order
var Operations = []OperationType{OperationAnalyze, OperationFormat, OperationWrite, OperationCopy}

// MemoryMetrics holds memory-related performance metrics
type MemoryMetrics struct {
	CurrentAlloc uint64 `json:"current_alloc"` // bytes currently allocated
	TotalAlloc   uint64 `json:"total_alloc"`   // total bytes allocated
	Sys          uint64 `json:"sys"`           // total bytes from system
	NumGC        uint32 `json:"num_gc"`        // number of garbage collections
}

// OperationMetrics holds metrics for specific operations
type OperationMetrics struct {
	Operation    OperationType `json:"operation"`
	Count        int64         `json:"count"`
	TotalTime    time.Duration `json:"total_time_ns"`
	MinTime      time.Duration `json:"min_time_ns"`
	MaxTime      time.Duration `json:"max_time_ns"`
	ErrorCount   int64         `json:"error_count"`
	SuccessCount int64         `json:"success_count"`
}

// AvgTime returns the mean duration, or 0 before the first measurement
func (m OperationMetrics) AvgTime() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.TotalTime / time.Duration(m.Count)
}

// MetricsSnapshot represents a point-in-time snapshot of all metrics
type MetricsSnapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Uptime     time.Duration      `json:"uptime_ns"`
	Memory     MemoryMetrics      `json:"memory"`
	Goroutines int                `json:"goroutines"`
	Operations []OperationMetrics `json:"operations"`
}

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to 0
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

const noMinimum = int64(^uint64(0) >> 1)

// Timer is a thread-safe timer for measuring operation durations
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	name      string
}

// NewTimer creates a new timer metric
func NewTimer(name string) *Timer {
	return &Timer{
		name:    name,
		minTime: noMinimum,
	}
}

// Record records a duration measurement
func (t *Timer) Record(duration time.Duration) {
	nanos := duration.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}

	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// TotalTime returns the total time of all measurements
func (t *Timer) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.totalTime))
}

// MinTime returns the minimum recorded time
func (t *Timer) MinTime() time.Duration {
	minTime := atomic.LoadInt64(&t.minTime)
	if minTime == noMinimum {
		return 0
	}
	return time.Duration(minTime)
}

// MaxTime returns the maximum recorded time
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// Reset resets all timer metrics
func (t *Timer) Reset() {
	atomic.StoreInt64(&t.count, 0)
	atomic.StoreInt64(&t.totalTime, 0)
	atomic.StoreInt64(&t.minTime, noMinimum)
	atomic.StoreInt64(&t.maxTime, 0)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

// collectMemory reads memory metrics from the Go runtime
func collectMemory() MemoryMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryMetrics{
		CurrentAlloc: m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
	}
}
