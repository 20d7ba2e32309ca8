package session

import (
	"errors"
	"testing"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
)

var scannedAt = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func TestSession_SubmitEntersScanning(t *testing.T) {
	s := New(progress.Default())

	gen, err := s.Submit("https://example.com")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gen != 1 {
		t.Errorf("generation = %d, want 1", gen)
	}

	want := State{Status: StatusScanning, Progress: 10, CurrentStep: progress.InitialLabel}
	if got := s.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
	if s.Result() != nil {
		t.Error("result should be empty while scanning")
	}
}

func TestSession_SubmitRefusals(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr func(error) bool
	}{
		{"empty url", "", scan.IsValidationError},
		{"blank url", "   ", scan.IsValidationError},
		{"relative url", "example.com", scan.IsValidationError},
		{"unsupported scheme", "mailto:owner@example.com", scan.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(progress.Default())

			_, err := s.Submit(tt.url)
			if !tt.wantErr(err) {
				t.Fatalf("Submit(%q) error = %v", tt.url, err)
			}
			if got := s.Snapshot(); got != (State{Status: StatusIdle}) {
				t.Errorf("state changed after refusal: %+v", got)
			}
			if s.Generation() != 0 {
				t.Error("generation advanced after refusal")
			}
		})
	}
}

func TestSession_SubmitWhileScanning(t *testing.T) {
	s := New(progress.Default())
	gen, _ := s.Submit("https://example.com")
	s.Tick(gen)
	before := s.Snapshot()

	if _, err := s.Submit("https://other.example"); !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("Submit() error = %v, want ErrScanInProgress", err)
	}
	if s.Snapshot() != before || s.Generation() != gen || s.URL() != "https://example.com" {
		t.Error("second submission mutated the session")
	}
}

func TestSession_CompleteFlow(t *testing.T) {
	s := New(progress.Default())
	gen, _ := s.Submit("https://example.com")

	for i := 0; i < 3; i++ {
		if !s.Tick(gen) {
			t.Fatalf("tick %d rejected", i)
		}
	}
	if got := s.Snapshot().Progress; got != 25 {
		t.Errorf("progress after 3 ticks = %d, want 25", got)
	}

	if !s.Complete(gen, "# Report\n...", scannedAt) {
		t.Fatal("Complete() rejected")
	}

	want := State{Status: StatusComplete, Progress: 100}
	if got := s.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
	res := s.Result()
	if res == nil || res.Markdown != "# Report\n..." || res.URL != "https://example.com" || !res.ScannedAt.Equal(scannedAt) {
		t.Errorf("Result() = %+v", res)
	}
}

func TestSession_NoMutationAfterResolution(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(s *Session, gen Generation)
	}{
		{"after complete", func(s *Session, gen Generation) { s.Complete(gen, "done", scannedAt) }},
		{"after fail", func(s *Session, gen Generation) { s.Fail(gen, scan.FailureMessage) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(progress.Default())
			gen, _ := s.Submit("https://example.com")
			tt.resolve(s, gen)
			before := s.Snapshot()

			if s.Tick(gen) {
				t.Error("tick accepted after resolution")
			}
			if s.Complete(gen, "late", scannedAt) || s.Fail(gen, "late") {
				t.Error("second resolution accepted")
			}
			if s.Snapshot() != before {
				t.Errorf("state mutated: %+v -> %+v", before, s.Snapshot())
			}
		})
	}
}

func TestSession_StaleGenerationIgnored(t *testing.T) {
	s := New(progress.Default())
	first, _ := s.Submit("https://first.example")
	s.Fail(first, scan.FailureMessage)
	s.Retry()

	second, _ := s.Submit("https://second.example")
	if second == first {
		t.Fatal("generation did not advance")
	}

	if s.Tick(first) {
		t.Error("stale tick applied")
	}
	if s.Complete(first, "stale", scannedAt) {
		t.Error("stale completion applied")
	}
	if got := s.Snapshot(); got.Status != StatusScanning || got.Progress != 10 {
		t.Errorf("state disturbed by stale generation: %+v", got)
	}
}

func TestSession_ResubmitDiscardsResult(t *testing.T) {
	s := New(progress.Default())
	gen, _ := s.Submit("https://example.com")
	s.Complete(gen, "old report", scannedAt)

	if _, err := s.Submit("https://example.org"); err != nil {
		t.Fatalf("Submit() from complete error = %v", err)
	}
	if s.Result() != nil {
		t.Error("previous result survived a new submission")
	}
	if s.Snapshot().Progress != 10 {
		t.Error("progress not reset")
	}
}

func TestSession_FailAndRetry(t *testing.T) {
	s := New(progress.Default())
	gen, _ := s.Submit("https://example.com")
	s.Tick(gen)

	if !s.Fail(gen, scan.FailureMessage) {
		t.Fatal("Fail() rejected")
	}
	want := State{Status: StatusError, Error: scan.FailureMessage}
	if got := s.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}

	if !s.Retry() {
		t.Fatal("Retry() rejected from error")
	}
	if got := s.Snapshot(); got != (State{Status: StatusIdle}) {
		t.Errorf("Snapshot() after retry = %+v", got)
	}
	if s.Retry() {
		t.Error("Retry() accepted outside error state")
	}
}

func TestSession_ProgressNeverReaches100WhileScanning(t *testing.T) {
	s := New(progress.Default())
	gen, _ := s.Submit("https://example.com")

	for i := 0; i < 50; i++ {
		s.Tick(gen)
		if p := s.Snapshot().Progress; p > progress.DefaultCap {
			t.Fatalf("progress %d exceeds cap", p)
		}
	}
}

func TestFailureMessage(t *testing.T) {
	if got := FailureMessage(&scan.AnalysisFailedError{Cause: errors.New("dial tcp: refused")}); got != scan.FailureMessage {
		t.Errorf("FailureMessage() = %q", got)
	}
	if got := FailureMessage(errors.New("unexpected")); got != scan.FailureMessage {
		t.Errorf("FailureMessage() leaked raw error: %q", got)
	}
	ve := &scan.ValidationError{Field: "url", Message: "a website URL is required"}
	if got := FailureMessage(ve); got != ve.Error() {
		t.Errorf("FailureMessage() = %q, want %q", got, ve.Error())
	}
}
