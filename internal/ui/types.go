package ui

import (
	"context"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
)

// AnalyzerFactory builds an analyzer for the given AI settings
type AnalyzerFactory func(*config.AIConfig) (scan.Analyzer, error)

// Options wires runtime collaborators into the TUI
type Options struct {
	Context context.Context
	// Analyzer is closed on Shutdown when it implements io.Closer.
	Analyzer scan.Analyzer
	// AI is the configuration Analyzer was built from.
	AI config.AIConfig
	// NewAnalyzer, when set, replaces the analyzer after a reload changes the
	// AI settings. Scans already running finish on the analyzer they started with.
	NewAnalyzer AnalyzerFactory
	// Timeout bounds each analysis call; 0 waits for the provider.
	Timeout    time.Duration
	Simulator  progress.Simulator
	Theme      theme.Theme
	DefaultURL string
	TimeFormat string
	// Location is the zone report timestamps are shown in; nil means local.
	Location *time.Location
	// Width caps the report wrap width; 0 follows the terminal.
	Width     int
	Clipboard report.Clipboard
	// Watcher, when set, feeds configuration reloads into the running UI.
	Watcher *config.Watcher
	Logger  *logger.Logger
	Now     func() time.Time
}

func (o *Options) applyDefaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Simulator == (progress.Simulator{}) {
		o.Simulator = progress.Default()
	}
	if o.Theme.Name == "" {
		o.Theme = theme.Default
	}
	if o.TimeFormat == "" {
		o.TimeFormat = report.DefaultTimeFormat
	}
	if o.Clipboard == nil {
		o.Clipboard = report.SystemClipboard{}
	}
	if o.Logger == nil {
		o.Logger = logger.NewWithCallback("ui", func() bool { return false })
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}
