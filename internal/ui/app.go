package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	scanprogress "github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
)

// chrome is the number of lines around the report viewport
const chrome = 12

// Model is the interactive scan screen. It owns the session and is the only
// caller of its methods.
type Model struct {
	opts     Options
	analyzer scan.Analyzer
	session  *session.Session
	renderer *report.Renderer
	styles   Styles
	keys     KeyMap

	input    textinput.Model
	bar      progress.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	width    int
	height   int
	ready    bool
	quitting bool

	stage   int
	notice  string
	copied  bool
	copySeq int
	elapsed time.Duration

	cancel context.CancelFunc
}

// New creates the scan screen
func New(opts Options) *Model {
	opts.applyDefaults()

	input := textinput.New()
	input.Placeholder = "https://example.com"
	input.CharLimit = 2048
	input.Prompt = "URL › "
	input.SetValue(opts.DefaultURL)
	input.Focus()

	m := &Model{
		opts:     opts,
		analyzer: opts.Analyzer,
		session:  session.New(opts.Simulator),
		keys:     DefaultKeyMap(),
		input:    input,
		viewport: viewport.New(report.DefaultWidth, 20),
		help:     help.New(),
	}
	m.applyTheme(opts.Theme)
	m.updateKeys()
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForConfig(m.opts.Watcher))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick(msg)
	case stageMsg:
		return m.handleStage(msg)
	case analysisResultMsg:
		return m.handleResult(msg)
	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	case configReloadedMsg:
		return m.handleConfigReload(msg)
	case configErrorMsg:
		m.notice = "Configuration reload failed: " + msg.err.Error()
		m.opts.Logger.WarnWithFields("Configuration reload failed", []logger.Field{logger.Error(msg.err)})
		return m, waitForConfig(m.opts.Watcher)
	case spinner.TickMsg:
		if m.session.Snapshot().Status != session.StatusScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// Session exposes the underlying state machine
func (m *Model) Session() *session.Session {
	return m.session
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.input.Width = max(10, msg.Width-len(m.input.Prompt)-6)
	m.bar.Width = max(10, min(msg.Width-12, 60))
	m.help.Width = msg.Width
	m.viewport.Width = msg.Width
	m.viewport.Height = max(3, msg.Height-chrome)

	m.rebuildRenderer()
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Blur) && m.session.Result() != nil:
			m.input.Blur()
			m.updateKeys()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Copy):
		return m.copyReport()
	case key.Matches(msg, m.keys.Export):
		return m.export()
	case key.Matches(msg, m.keys.Retry):
		return m.retry()
	case key.Matches(msg, m.keys.NewScan):
		return m.focusInput()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit starts a scan of the URL in the input field
func (m *Model) submit() (tea.Model, tea.Cmd) {
	url := strings.TrimSpace(m.input.Value())

	gen, err := m.session.Submit(url)
	if err != nil {
		if errors.Is(err, session.ErrScanInProgress) {
			m.notice = "A scan is already running."
		} else {
			m.notice = session.FailureMessage(err)
		}
		m.opts.Logger.Debug("Submission refused: %v", err)
		return m, nil
	}

	m.notice = ""
	m.copied = false
	m.stage = 0
	m.elapsed = 0
	m.viewport.SetContent("")
	m.input.Blur()
	m.updateKeys()

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := m.analysisContext()
	m.cancel = cancel

	m.opts.Logger.InfoWithFields("Scan started", []logger.Field{
		logger.F("url", url),
		logger.F("generation", uint64(gen)),
	})

	return m, tea.Batch(
		tickCmd(m.session.Simulator().Interval, gen),
		stageCmd(gen),
		analyzeCmd(ctx, m.analyzer, gen, url),
		m.spinner.Tick,
	)
}

// analysisContext scopes one analysis call; the timeout restarts per scan
func (m *Model) analysisContext() (context.Context, context.CancelFunc) {
	if m.opts.Timeout > 0 {
		return context.WithTimeout(m.opts.Context, m.opts.Timeout)
	}
	return context.WithCancel(m.opts.Context)
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if !m.session.Tick(msg.gen) {
		return m, nil
	}
	return m, tickCmd(m.session.Simulator().Interval, msg.gen)
}

func (m *Model) handleStage(msg stageMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.session.Generation() || m.session.Snapshot().Status != session.StatusScanning {
		return m, nil
	}
	m.stage = scanprogress.NextStage(m.stage)
	return m, stageCmd(msg.gen)
}

func (m *Model) handleResult(msg analysisResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.session.Fail(msg.gen, session.FailureMessage(msg.err)) {
			m.opts.Logger.WarnWithFields("Scan failed", []logger.Field{
				logger.F("url", m.session.URL()),
				logger.Duration(msg.elapsed),
				logger.Error(msg.err),
			})
		}
	} else if m.session.Complete(msg.gen, msg.markdown, m.opts.Now()) {
		m.elapsed = msg.elapsed
		m.refreshReport()
		m.viewport.GotoTop()
		m.opts.Logger.InfoWithFields("Scan complete", []logger.Field{
			logger.F("url", m.session.URL()),
			logger.Duration(msg.elapsed),
			logger.F("bytes", len(msg.markdown)),
		})
	}

	if m.cancel != nil && msg.gen == m.session.Generation() {
		m.cancel()
		m.cancel = nil
	}
	m.updateKeys()
	return m, nil
}

func (m *Model) copyReport() (tea.Model, tea.Cmd) {
	if err := report.Copy(m.opts.Clipboard, m.session.Result()); err != nil {
		if !errors.Is(err, report.ErrNothingToCopy) {
			m.notice = "Copy failed: " + err.Error()
			m.opts.Logger.WarnWithFields("Copy failed", []logger.Field{logger.Error(err)})
		}
		return m, nil
	}

	m.copied = true
	m.copySeq++
	return m, copyResetCmd(m.copySeq)
}

func (m *Model) export() (tea.Model, tea.Cmd) {
	if m.session.Result() == nil {
		return m, nil
	}
	if err := report.Export(m.session.Result()); err != nil {
		m.notice = report.ExportLabel + " is not available yet."
	}
	return m, nil
}

func (m *Model) retry() (tea.Model, tea.Cmd) {
	if !m.session.Retry() {
		return m, nil
	}
	m.notice = ""
	return m.focusInput()
}

func (m *Model) focusInput() (tea.Model, tea.Cmd) {
	if m.session.Snapshot().Status == session.StatusScanning {
		return m, nil
	}
	cmd := m.input.Focus()
	m.updateKeys()
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Shutdown()
	return m, tea.Quit
}

// Shutdown abandons any outstanding analysis call and releases the analyzer
func (m *Model) Shutdown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.closeAnalyzer(m.analyzer)
}

func (m *Model) closeAnalyzer(a scan.Analyzer) {
	c, ok := a.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.opts.Logger.WarnWithFields("Failed to close analyzer", []logger.Field{logger.Error(err)})
	}
}

// reloadAnalyzer swaps in an analyzer for changed AI settings. The running
// scan, if any, already holds the previous analyzer.
func (m *Model) reloadAnalyzer(aiConfig *config.AIConfig) (bool, error) {
	if m.opts.NewAnalyzer == nil || *aiConfig == m.opts.AI {
		return false, nil
	}

	analyzer, err := m.opts.NewAnalyzer(aiConfig)
	if err != nil {
		return false, err
	}

	m.closeAnalyzer(m.analyzer)
	m.analyzer = analyzer
	m.opts.AI = *aiConfig
	return true, nil
}

func (m *Model) handleConfigReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.cfg
	if t, ok := theme.ByName(cfg.Output.Theme); ok {
		m.applyTheme(t)
	}
	if cfg.Output.TimestampFormat != "" {
		m.opts.TimeFormat = cfg.Output.TimestampFormat
	}
	m.opts.Width = cfg.Output.Width
	m.rebuildRenderer()
	m.notice = "Configuration reloaded."

	fields := []logger.Field{logger.F("theme", cfg.Output.Theme)}
	if m.opts.Watcher != nil {
		fields = append(fields, logger.F("path", m.opts.Watcher.Path()))
	}

	swapped, err := m.reloadAnalyzer(&cfg.AI)
	if err != nil {
		m.notice = "AI settings not applied: " + err.Error()
		m.opts.Logger.WarnWithFields("AI settings not applied", append(fields, logger.Error(err)))
		return m, waitForConfig(m.opts.Watcher)
	}
	if swapped {
		fields = append(fields, logger.F("provider", cfg.AI.Provider), logger.F("model", cfg.AI.Model))
	}

	m.opts.Logger.InfoWithFields("Configuration reloaded", fields)
	return m, waitForConfig(m.opts.Watcher)
}

func (m *Model) applyTheme(t theme.Theme) {
	m.opts.Theme = t
	m.styles = NewStyles(t)

	m.bar = progress.New(
		progress.WithGradient(t.GradientStart, t.GradientEnd),
		progress.WithWidth(max(10, min(m.width-12, 60))),
		progress.WithoutPercentage(),
	)
	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styles.Spinner),
	)
	m.rebuildRenderer()
}

// rebuildRenderer recreates the report renderer after a size, theme or
// format change and re-renders any completed report
func (m *Model) rebuildRenderer() {
	width := m.viewport.Width
	if m.opts.Width > 0 && m.opts.Width < width {
		width = m.opts.Width
	}
	m.renderer = report.NewRenderer(
		report.WithWidth(width),
		report.WithStyles(report.NewStyles(m.opts.Theme)),
		report.WithTimeFormat(m.opts.TimeFormat),
		report.WithLocation(m.opts.Location),
	)
	m.refreshReport()
}

func (m *Model) refreshReport() {
	if res := m.session.Result(); res != nil {
		m.viewport.SetContent(m.renderer.Render(res))
	}
}

// updateKeys enables only the bindings that apply to the current state
func (m *Model) updateKeys() {
	status := m.session.Snapshot().Status
	hasReport := status == session.StatusComplete

	m.keys.Submit.SetEnabled(status != session.StatusScanning)
	m.keys.Copy.SetEnabled(hasReport && !m.input.Focused())
	m.keys.Export.SetEnabled(hasReport && !m.input.Focused())
	m.keys.Retry.SetEnabled(status == session.StatusError)
	m.keys.NewScan.SetEnabled(hasReport && !m.input.Focused())
	m.keys.Blur.SetEnabled(hasReport && m.input.Focused())
	m.keys.Quit.SetEnabled(!m.input.Focused())
}
