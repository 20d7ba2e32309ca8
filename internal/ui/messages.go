package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
)

// Messages carry the generation of the scan that produced them so results
// from a superseded scan are dropped by the session.
type tickMsg struct {
	gen session.Generation
}

type stageMsg struct {
	gen session.Generation
}

type analysisResultMsg struct {
	gen      session.Generation
	markdown string
	err      error
	elapsed  time.Duration
}

type copyResetMsg struct {
	seq int
}

type configReloadedMsg struct {
	cfg *config.Config
}

type configErrorMsg struct {
	err error
}

func tickCmd(interval time.Duration, gen session.Generation) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func stageCmd(gen session.Generation) tea.Cmd {
	return tea.Tick(progress.StageInterval, func(time.Time) tea.Msg {
		return stageMsg{gen: gen}
	})
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(report.CopiedFor, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// analyzeCmd performs the single analysis call for gen
func analyzeCmd(ctx context.Context, analyzer scan.Analyzer, gen session.Generation, url string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		markdown, err := analyzer.Analyze(ctx, url)
		return analysisResultMsg{
			gen:      gen,
			markdown: markdown,
			err:      err,
			elapsed:  time.Since(start),
		}
	}
}

// waitForConfig blocks until the watcher publishes a reload or an error
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Updates():
			if !ok {
				return nil
			}
			return configReloadedMsg{cfg: cfg}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}
