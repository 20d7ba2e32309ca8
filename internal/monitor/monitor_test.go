package monitor

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	counter.Inc()
	counter.Inc()
	if counter.Get() != 2 {
		t.Errorf("Expected value 2 after two Inc(), got %d", counter.Get())
	}

	counter.Reset()
	if counter.Get() != 0 {
		t.Errorf("Expected value 0 after Reset(), got %d", counter.Get())
	}

	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("test_timer")

	if timer.Count() != 0 || timer.TotalTime() != 0 || timer.MinTime() != 0 {
		t.Errorf("Expected empty timer, got count=%d total=%v min=%v", timer.Count(), timer.TotalTime(), timer.MinTime())
	}

	timer.Record(100 * time.Millisecond)
	timer.Record(200 * time.Millisecond)
	timer.Record(150 * time.Millisecond)

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}
	if timer.TotalTime() != 450*time.Millisecond {
		t.Errorf("Expected total time 450ms, got %v", timer.TotalTime())
	}
	if timer.MinTime() != 100*time.Millisecond {
		t.Errorf("Expected min time 100ms, got %v", timer.MinTime())
	}
	if timer.MaxTime() != 200*time.Millisecond {
		t.Errorf("Expected max time 200ms, got %v", timer.MaxTime())
	}

	timer.Reset()
	if timer.Count() != 0 || timer.MaxTime() != 0 || timer.MinTime() != 0 {
		t.Errorf("Expected reset timer, got count=%d max=%v min=%v", timer.Count(), timer.MaxTime(), timer.MinTime())
	}
}

func TestTimer_Concurrent(t *testing.T) {
	timer := NewTimer("concurrent")

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			timer.Record(time.Duration(n) * time.Millisecond)
		}(i)
	}
	wg.Wait()

	if timer.Count() != 50 {
		t.Errorf("Expected 50 measurements, got %d", timer.Count())
	}
	if timer.MinTime() != time.Millisecond || timer.MaxTime() != 50*time.Millisecond {
		t.Errorf("Unexpected bounds min=%v max=%v", timer.MinTime(), timer.MaxTime())
	}
}

// steppingClock advances by step on every call
func steppingClock(step time.Duration) func() time.Time {
	current := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestCollector_Track(t *testing.T) {
	c := New()
	c.now = steppingClock(250 * time.Millisecond)

	if err := c.Track(OperationAnalyze, func() error { return nil }); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	boom := errors.New("boom")
	if err := c.Track(OperationAnalyze, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Track() should return fn's error, got %v", err)
	}
	c.Record(OperationCopy, 5*time.Millisecond, nil)

	snapshot := c.GetSnapshot()
	if len(snapshot.Operations) != 2 {
		t.Fatalf("Expected 2 operations (format and write never ran), got %+v", snapshot.Operations)
	}

	analyze := snapshot.Operations[0]
	if analyze.Operation != OperationAnalyze {
		t.Fatalf("Expected analyze first, got %s", analyze.Operation)
	}
	if analyze.Count != 2 || analyze.ErrorCount != 1 || analyze.SuccessCount != 1 {
		t.Errorf("Unexpected analyze counts: %+v", analyze)
	}
	if analyze.AvgTime() != 250*time.Millisecond {
		t.Errorf("Expected avg 250ms, got %v", analyze.AvgTime())
	}

	if snapshot.Operations[1].Operation != OperationCopy {
		t.Errorf("Expected copy second, got %s", snapshot.Operations[1].Operation)
	}
	if snapshot.Goroutines == 0 {
		t.Error("Expected goroutine count")
	}
}

func TestCollector_CustomOperationsAreSorted(t *testing.T) {
	c := New()
	c.Record("zeta", time.Millisecond, nil)
	c.Record("alpha", time.Millisecond, nil)
	c.Record(OperationFormat, time.Millisecond, nil)

	var got []string
	for _, op := range c.GetSnapshot().Operations {
		got = append(got, string(op.Operation))
	}
	if strings.Join(got, ",") != "format,alpha,zeta" {
		t.Errorf("Unexpected order: %v", got)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := New()
	c.Record(OperationWrite, time.Second, errors.New("disk full"))
	c.Reset()

	if ops := c.GetSnapshot().Operations; len(ops) != 0 {
		t.Errorf("Expected no operations after reset, got %+v", ops)
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector

	called := false
	if err := c.Track(OperationAnalyze, func() error { called = true; return nil }); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if !called {
		t.Error("nil collector should still run fn")
	}
	c.Record(OperationCopy, time.Second, nil)
	c.Reset()
	if ops := c.GetSnapshot().Operations; ops != nil {
		t.Errorf("nil collector snapshot should be empty, got %+v", ops)
	}
}

func TestFormatReport(t *testing.T) {
	c := New()
	c.Record(OperationAnalyze, 4200*time.Millisecond, nil)
	c.Record(OperationFormat, 3*time.Millisecond, nil)
	snapshot := c.GetSnapshot()

	tests := []struct {
		name   string
		format ReportFormat
		want   []string
	}{
		{"text", ReportFormatText, []string{"Operation", "analyze", "4.2s", "format", "3ms", "Memory:"}},
		{"default is text", "", []string{"Operation", "analyze"}},
		{"markdown", ReportFormatMarkdown, []string{"## Scan Metrics", "analyze", "Memory:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatReport(snapshot, tt.format)
			if err != nil {
				t.Fatalf("FormatReport() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		out, err := FormatReport(snapshot, ReportFormatJSON)
		if err != nil {
			t.Fatalf("FormatReport() error = %v", err)
		}
		var decoded MetricsSnapshot
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Operations) != 2 || decoded.Operations[0].TotalTime != 4200*time.Millisecond {
			t.Errorf("Unexpected operations: %+v", decoded.Operations)
		}
	})

	if _, err := FormatReport(snapshot, "csv"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{
		512:             "512 B",
		2048:            "2.0 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkTimer(b *testing.B) {
	timer := NewTimer("bench")
	for i := 0; i < b.N; i++ {
		timer.Record(time.Duration(i))
	}
}
