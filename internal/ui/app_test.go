package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
)

const testReport = `# Ray's Restaurants

## 1. Executive Summary

Family dining since 1984.
`

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(context.Context, string) (string, error) {
	return testReport, nil
}

// recordingAnalyzer hands each analysis context to the test
type recordingAnalyzer struct {
	calls  chan context.Context
	closed int
}

func newRecordingAnalyzer() *recordingAnalyzer {
	return &recordingAnalyzer{calls: make(chan context.Context, 4)}
}

func (a *recordingAnalyzer) Analyze(ctx context.Context, _ string) (string, error) {
	a.calls <- ctx
	return testReport, nil
}

func (a *recordingAnalyzer) Close() error {
	a.closed++
	return nil
}

func (a *recordingAnalyzer) await(t *testing.T) context.Context {
	t.Helper()
	select {
	case ctx := <-a.calls:
		return ctx
	case <-time.After(5 * time.Second):
		t.Fatal("analyzer was not called")
		return nil
	}
}

// runBatch starts every command of a batch in the background
func runBatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		return
	}
	for _, c := range batch {
		if c != nil {
			go c()
		}
	}
}

type memoryClipboard struct {
	text string
	err  error
}

func (c *memoryClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

var fixedNow = time.Date(2025, 3, 4, 15, 7, 0, 0, time.UTC)

func newTestModel(t *testing.T, cb *memoryClipboard) *Model {
	t.Helper()
	m := New(Options{
		Analyzer:   stubAnalyzer{},
		DefaultURL: "https://www.raysrestaurants.com/",
		Clipboard:  cb,
		Logger:     logger.NewWithWriter("ui", nil, io.Discard),
		Now:        func() time.Time { return fixedNow },
		Location:   time.UTC,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func submit(t *testing.T, m *Model) session.Generation {
	t.Helper()
	_, cmd := m.Update(keyPress("enter"))
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if got := m.Session().Snapshot().Status; got != session.StatusScanning {
		t.Fatalf("status after submit = %s, want scanning", got)
	}
	return m.Session().Generation()
}

func complete(t *testing.T, m *Model) {
	t.Helper()
	gen := submit(t, m)
	m.Update(analysisResultMsg{gen: gen, markdown: testReport, elapsed: 2 * time.Second})
	if got := m.Session().Snapshot().Status; got != session.StatusComplete {
		t.Fatalf("status = %s, want complete", got)
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(Options{Analyzer: stubAnalyzer{}})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_SubmitStartsScan(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})

	submit(t, m)

	state := m.Session().Snapshot()
	if state.Progress != progress.InitialProgress || state.CurrentStep != progress.InitialLabel {
		t.Errorf("state = %+v", state)
	}
	if m.input.Focused() {
		t.Error("input should be blurred while scanning")
	}

	view := m.View()
	for _, want := range []string{progress.InitialLabel, "10%", progress.Stages[0]} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_InvalidURLRefused(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no scheme", "example.com"},
		{"unsupported scheme", "ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &memoryClipboard{})
			m.input.SetValue(tt.value)

			_, cmd := m.Update(keyPress("enter"))
			if cmd != nil {
				t.Error("refused submission should not start commands")
			}
			if got := m.Session().Snapshot().Status; got != session.StatusIdle {
				t.Errorf("status = %s, want idle", got)
			}
			if m.notice == "" || m.notice == scan.FailureMessage {
				t.Errorf("expected validation notice, got %q", m.notice)
			}
			if m.Session().Generation() != 0 {
				t.Error("refused submission must not advance the generation")
			}
		})
	}
}

func TestModel_SubmitDisabledWhileScanning(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	gen := submit(t, m)

	m.Update(keyPress("enter"))

	if m.Session().Generation() != gen {
		t.Errorf("generation changed from %d to %d", gen, m.Session().Generation())
	}
	if got := m.Session().Snapshot().Progress; got != progress.InitialProgress {
		t.Errorf("progress = %d, want %d", got, progress.InitialProgress)
	}
}

func TestModel_TicksAdvanceAndCap(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	gen := submit(t, m)

	_, cmd := m.Update(tickMsg{gen: gen})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Session().Snapshot().Progress; got != 15 {
		t.Errorf("progress after one tick = %d, want 15", got)
	}

	for i := 0; i < 30; i++ {
		m.Update(tickMsg{gen: gen})
	}
	state := m.Session().Snapshot()
	if state.Progress != progress.DefaultCap {
		t.Errorf("progress = %d, want cap %d", state.Progress, progress.DefaultCap)
	}
	if state.CurrentStep != "Synthesizing final report..." {
		t.Errorf("label = %q", state.CurrentStep)
	}

	if _, cmd := m.Update(tickMsg{gen: gen + 1}); cmd != nil {
		t.Error("tick from another generation should stop")
	}
}

func TestModel_StageRotation(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	gen := submit(t, m)

	for i := 0; i < len(progress.Stages); i++ {
		m.Update(stageMsg{gen: gen})
	}
	if m.stage != 0 {
		t.Errorf("stage = %d, want wrap to 0", m.stage)
	}

	m.Update(stageMsg{gen: gen})
	if m.stage != 1 {
		t.Errorf("stage = %d, want 1", m.stage)
	}

	if _, cmd := m.Update(stageMsg{gen: gen + 1}); cmd != nil {
		t.Error("stale stage message should not reschedule")
	}
}

func TestModel_CompleteRendersReport(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	complete(t, m)

	res := m.Session().Result()
	if res.Markdown != testReport || !res.ScannedAt.Equal(fixedNow) {
		t.Errorf("result = %+v", res)
	}

	view := m.View()
	for _, want := range []string{
		"Analysis Report",
		"www.raysrestaurants.com",
		"Copy Text",
		"Export PDF",
		"Executive Summary",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, progress.InitialLabel) {
		t.Error("progress should not be shown once complete")
	}
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	gen := submit(t, m)

	m.Update(analysisResultMsg{gen: gen - 1, markdown: "old"})
	m.Update(analysisResultMsg{gen: gen + 1, err: errors.New("late")})

	if got := m.Session().Snapshot().Status; got != session.StatusScanning {
		t.Errorf("status = %s, want scanning", got)
	}
}

func TestModel_FailureAndRetry(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	gen := submit(t, m)

	cause := &scan.AnalysisFailedError{Cause: errors.New("503 from upstream")}
	m.Update(analysisResultMsg{gen: gen, err: cause})

	state := m.Session().Snapshot()
	if state.Status != session.StatusError || state.Error != scan.FailureMessage {
		t.Fatalf("state = %+v", state)
	}
	view := m.View()
	if !strings.Contains(view, "Scan failed") || strings.Contains(view, "503") {
		t.Errorf("error view should show the fixed message only:\n%s", view)
	}

	m.Update(keyPress("r"))
	if got := m.Session().Snapshot().Status; got != session.StatusIdle {
		t.Errorf("status after retry = %s, want idle", got)
	}
	if !m.input.Focused() {
		t.Error("retry should focus the URL input")
	}
	if m.input.Value() != "https://www.raysrestaurants.com/" {
		t.Errorf("retry should keep the URL, got %q", m.input.Value())
	}
}

func TestModel_CopyShowsConfirmationThenReverts(t *testing.T) {
	cb := &memoryClipboard{}
	m := newTestModel(t, cb)
	complete(t, m)

	_, cmd := m.Update(keyPress("c"))
	if cmd == nil {
		t.Fatal("copy should schedule the label reset")
	}
	if cb.text != testReport {
		t.Errorf("clipboard = %q, want raw markdown", cb.text)
	}
	if !strings.Contains(m.View(), "Copied") {
		t.Error("view should show the copied confirmation")
	}

	// A second copy restarts the window; the first reset is stale.
	m.Update(keyPress("c"))
	m.Update(copyResetMsg{seq: 1})
	if !m.copied {
		t.Error("stale reset should not clear the confirmation")
	}

	m.Update(copyResetMsg{seq: 2})
	if m.copied {
		t.Error("confirmation should clear after its reset")
	}
	if !strings.Contains(m.View(), "Copy Text") {
		t.Error("label should revert to Copy Text")
	}
}

func TestModel_CopyFailure(t *testing.T) {
	cb := &memoryClipboard{err: errors.New("no clipboard utility")}
	m := newTestModel(t, cb)
	complete(t, m)

	if _, cmd := m.Update(keyPress("c")); cmd != nil {
		t.Error("failed copy should not schedule a reset")
	}
	if m.copied {
		t.Error("failed copy should not show confirmation")
	}
	if !strings.Contains(m.notice, "no clipboard utility") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_ExportDisabled(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	complete(t, m)

	m.Update(keyPress("e"))
	if !strings.Contains(m.notice, "not available") {
		t.Errorf("notice = %q", m.notice)
	}
	if got := m.Session().Snapshot().Status; got != session.StatusComplete {
		t.Errorf("export changed status to %s", got)
	}
}

func TestModel_NewScanFromReport(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	complete(t, m)

	m.Update(keyPress("n"))
	if !m.input.Focused() {
		t.Fatal("n should focus the URL input")
	}

	m.Update(keyPress("esc"))
	if m.input.Focused() {
		t.Error("esc should return focus to the report")
	}

	m.Update(keyPress("n"))
	m.input.SetValue("https://example.com")
	submit(t, m)
	if m.Session().Result() != nil {
		t.Error("new scan should clear the previous result")
	}
}

func TestModel_ConfigReload(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})

	cfg := config.DefaultConfig()
	cfg.Output.Theme = "minimal"
	cfg.Output.TimestampFormat = "2006-01-02"
	_, cmd := m.Update(configReloadedMsg{cfg: cfg})

	if cmd != nil {
		t.Error("no watcher configured, nothing to wait on")
	}
	if m.opts.Theme.Name != "minimal" {
		t.Errorf("theme = %q", m.opts.Theme.Name)
	}
	if m.opts.TimeFormat != "2006-01-02" {
		t.Errorf("time format = %q", m.opts.TimeFormat)
	}

	complete(t, m)
	if !strings.Contains(m.View(), "2025-03-04") {
		t.Error("report header should use the reloaded timestamp format")
	}
}

func TestModel_ConfigReloadSwapsAnalyzer(t *testing.T) {
	first := newRecordingAnalyzer()
	second := newRecordingAnalyzer()
	initial := config.DefaultConfig().AI

	var built []config.AIConfig
	m := New(Options{
		Analyzer:   first,
		AI:         initial,
		DefaultURL: "https://www.raysrestaurants.com/",
		Clipboard:  &memoryClipboard{},
		Logger:     logger.NewWithWriter("ui", nil, io.Discard),
		NewAnalyzer: func(c *config.AIConfig) (scan.Analyzer, error) {
			built = append(built, *c)
			return second, nil
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	// A scan started before the reload finishes on the analyzer it began with.
	_, inFlight := m.Update(keyPress("enter"))
	gen := m.Session().Generation()

	cfg := config.DefaultConfig()
	cfg.AI.Provider = "openai"
	cfg.AI.Model = "gpt-4o-mini"
	m.Update(configReloadedMsg{cfg: cfg})

	if len(built) != 1 || built[0].Provider != "openai" {
		t.Fatalf("factory calls = %+v", built)
	}
	if first.closed != 1 {
		t.Errorf("previous analyzer closed %d times, want 1", first.closed)
	}

	runBatch(inFlight)
	first.await(t)
	m.Update(analysisResultMsg{gen: gen, markdown: testReport})

	_, next := m.Update(keyPress("enter"))
	runBatch(next)
	second.await(t)
	if len(first.calls) != 0 {
		t.Error("scan after reload should not use the previous analyzer")
	}

	// Same AI settings again: nothing is rebuilt.
	m.Update(configReloadedMsg{cfg: cfg})
	if len(built) != 1 {
		t.Errorf("unchanged AI settings rebuilt the analyzer (%d calls)", len(built))
	}

	m.Shutdown()
	if second.closed != 1 {
		t.Errorf("current analyzer closed %d times on shutdown, want 1", second.closed)
	}
}

func TestModel_ConfigReloadKeepsAnalyzerOnError(t *testing.T) {
	first := newRecordingAnalyzer()
	m := New(Options{
		Analyzer:   first,
		AI:         config.DefaultConfig().AI,
		DefaultURL: "https://www.raysrestaurants.com/",
		Logger:     logger.NewWithWriter("ui", nil, io.Discard),
		NewAnalyzer: func(*config.AIConfig) (scan.Analyzer, error) {
			return nil, errors.New("no API key for openai provider")
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	cfg := config.DefaultConfig()
	cfg.AI.Provider = "openai"
	m.Update(configReloadedMsg{cfg: cfg})

	if !strings.Contains(m.notice, "no API key") {
		t.Errorf("notice = %q", m.notice)
	}
	if first.closed != 0 {
		t.Error("analyzer should be kept when the replacement fails")
	}

	_, cmd := m.Update(keyPress("enter"))
	runBatch(cmd)
	first.await(t)
}

func TestModel_TimeoutAppliesPerScan(t *testing.T) {
	a := newRecordingAnalyzer()
	m := New(Options{
		Analyzer:   a,
		Timeout:    50 * time.Millisecond,
		DefaultURL: "https://www.raysrestaurants.com/",
		Logger:     logger.NewWithWriter("ui", nil, io.Discard),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := m.Update(keyPress("enter"))
	runBatch(cmd)
	ctx := a.await(t)
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("analysis context has no deadline")
	}
	<-ctx.Done()
	m.Update(analysisResultMsg{gen: m.Session().Generation(), err: ctx.Err()})

	_, cmd = m.Update(keyPress("enter"))
	runBatch(cmd)
	next := a.await(t)
	if next.Err() != nil {
		t.Errorf("second scan started with an expired context: %v", next.Err())
	}
}

func TestModel_QuitCancelsScan(t *testing.T) {
	m := newTestModel(t, &memoryClipboard{})
	submit(t, m)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
	if m.cancel != nil {
		t.Error("outstanding scan should be cancelled")
	}
}
