package session

import (
	"context"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
)

// Observer receives every state change made by a Runner.
type Observer func(State)

// Runner drives one session without a UI. A single goroutine owns the
// session; the analyzer runs on its own goroutine and reports back over a
// channel.
type Runner struct {
	session  *Session
	analyzer scan.Analyzer
	observer Observer
	now      func() time.Time
	logger   *logger.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithObserver registers fn for state changes.
func WithObserver(fn Observer) RunnerOption {
	return func(r *Runner) { r.observer = fn }
}

// WithClock replaces time.Now for result timestamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner for s backed by analyzer.
func NewRunner(s *Session, analyzer scan.Analyzer, opts ...RunnerOption) *Runner {
	r := &Runner{
		session:  s,
		analyzer: analyzer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.New("session", nil)
	}
	return r
}

type outcome struct {
	markdown string
	err      error
}

// Run submits url and blocks until the analysis resolves. The simulator
// ticker is stopped before the outcome is applied. Cancelling ctx abandons
// the wait and fails the session.
func (r *Runner) Run(ctx context.Context, url string) (*Result, error) {
	gen, err := r.session.Submit(url)
	if err != nil {
		return nil, err
	}
	r.notify()

	results := make(chan outcome, 1)
	go func() {
		markdown, err := r.analyzer.Analyze(ctx, r.session.URL())
		results <- outcome{markdown: markdown, err: err}
	}()

	ticker := time.NewTicker(r.session.Simulator().Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.session.Tick(gen) {
				r.notify()
			}

		case out := <-results:
			ticker.Stop()
			if out.err != nil {
				r.logger.WarnWithFields("scan failed", []logger.Field{
					logger.F("generation", uint64(gen)),
					logger.Error(out.err),
				})
				r.session.Fail(gen, FailureMessage(out.err))
				r.notify()
				return nil, out.err
			}
			r.session.Complete(gen, out.markdown, r.now())
			r.notify()
			return r.session.Result(), nil

		case <-ctx.Done():
			ticker.Stop()
			r.session.Fail(gen, scan.FailureMessage)
			r.notify()
			return nil, ctx.Err()
		}
	}
}

func (r *Runner) notify() {
	if r.observer != nil {
		r.observer(r.session.Snapshot())
	}
}
