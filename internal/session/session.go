package session

import (
	"errors"
	"strings"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
)

// ErrScanInProgress is returned by Submit while a scan is outstanding.
var ErrScanInProgress = errors.New("a scan is already in progress")

// Session owns the analysis state. It is not safe for concurrent use: one
// orchestrator (the TUI update loop or a Runner) calls every method.
type Session struct {
	sim        progress.Simulator
	state      State
	result     *Result
	url        string
	generation Generation
}

// New creates an idle session that advances progress with sim.
func New(sim progress.Simulator) *Session {
	return &Session{
		sim:   sim,
		state: State{Status: StatusIdle},
	}
}

// Submit starts a scan of rawURL. It is refused while scanning and for URLs
// that are not absolute http(s) addresses; refusal leaves the state untouched.
func (s *Session) Submit(rawURL string) (Generation, error) {
	if s.state.Status == StatusScanning {
		return 0, ErrScanInProgress
	}
	if _, err := scan.ValidateURL(rawURL); err != nil {
		return 0, err
	}

	s.generation++
	s.url = strings.TrimSpace(rawURL)
	s.result = nil
	s.state = State{
		Status:      StatusScanning,
		Progress:    progress.InitialProgress,
		CurrentStep: progress.InitialLabel,
	}
	return s.generation, nil
}

// Tick applies one simulator step. It reports false when gen is stale or the
// session is no longer scanning.
func (s *Session) Tick(gen Generation) bool {
	if !s.active(gen) {
		return false
	}
	next := s.sim.Next(s.state.Progress, s.state.CurrentStep)
	s.state.Progress = next.Progress
	s.state.CurrentStep = next.Label
	return true
}

// Complete stores the analysis result for gen.
func (s *Session) Complete(gen Generation, markdown string, now time.Time) bool {
	if !s.active(gen) {
		return false
	}
	s.result = &Result{Markdown: markdown, URL: s.url, ScannedAt: now}
	s.state = State{Status: StatusComplete, Progress: 100}
	return true
}

// Fail moves the scan for gen into the error state.
func (s *Session) Fail(gen Generation, message string) bool {
	if !s.active(gen) {
		return false
	}
	s.state = State{Status: StatusError, Error: message}
	return true
}

// Retry clears an error and returns to idle.
func (s *Session) Retry() bool {
	if s.state.Status != StatusError {
		return false
	}
	s.state = State{Status: StatusIdle}
	s.result = nil
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	return s.state
}

// Result returns the completed result, or nil outside the complete state.
func (s *Session) Result() *Result {
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Generation returns the generation of the latest accepted submission.
func (s *Session) Generation() Generation {
	return s.generation
}

// URL returns the address of the latest accepted submission.
func (s *Session) URL() string {
	return s.url
}

// Simulator returns the progress simulator driving Tick.
func (s *Session) Simulator() progress.Simulator {
	return s.sim
}

func (s *Session) active(gen Generation) bool {
	return s.state.Status == StatusScanning && gen == s.generation
}

// FailureMessage converts an analysis error into the text shown to the user.
// Only validation problems are reported verbatim.
func FailureMessage(err error) string {
	if scan.IsValidationError(err) {
		return err.Error()
	}
	return scan.FailureMessage
}
