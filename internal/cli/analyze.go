package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/123ABCabcdpogj/analysis-AI/internal/config"
	"github.com/123ABCabcdpogj/analysis-AI/internal/emoji"
	"github.com/123ABCabcdpogj/analysis-AI/internal/formatter"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
	"github.com/123ABCabcdpogj/analysis-AI/internal/monitor"
	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/scan"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ui"
)

var (
	analyzeNoTUI      bool
	analyzeOutputFile string
	analyzeCopy       bool
	analyzeTimeout    time.Duration
	analyzeStats      bool
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Generate an analysis report for a website",
		Long: `Generate an AI-written analysis report for a website.

Without --no-tui an interactive screen opens with the URL prefilled; press enter
to start the scan. With --no-tui, or when the output format is not text, the scan
runs headless and the report is printed once it is ready.

If no URL is given, scan.default_url from the configuration is used.

Examples:
  sitescan analyze https://example.com
  sitescan analyze --no-tui https://example.com
  sitescan analyze -o markdown --output-file report.md https://example.com
  sitescan analyze -o json https://example.com | jq .markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&analyzeCopy, "copy", false, "copy the report Markdown to the clipboard when done")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "deadline for each scan (0 waits for the provider)")
	cmd.Flags().BoolVar(&analyzeStats, "stats", false, "print operation timings to stderr after a headless scan")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadGlobalConfig()
	if err != nil {
		return err
	}

	// Use config values if flags weren't explicitly set
	if !cmd.Flags().Changed("output") {
		outputFmt = cfg.Output.DefaultFormat
	}
	if !cmd.Flags().Changed("verbose") && cfg.Output.Verbose {
		verbose = true
	}
	applyColorMode(cfg.Output.ColorMode)

	url := cfg.Scan.DefaultURL
	if len(args) == 1 {
		url = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The TUI applies --timeout to each scan it starts.
	if shouldUseTUIMode() {
		return runInteractive(ctx, cfg, path, url)
	}

	if analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeTimeout)
		defer cancel()
	}

	// Headless runs refuse a bad URL before any provider is set up.
	if _, err := scan.ValidateURL(url); err != nil {
		return err
	}

	provider, err := createAIProvider(&cfg.AI)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	client, err := newScanClient(provider, &cfg.AI, GetLogger("scan"))
	if err != nil {
		return err
	}

	run := headlessRun{
		Analyzer: client,
		Config:   cfg,
		Provider: provider.Name(),
		URL:      url,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}
	if analyzeStats {
		run.Metrics = monitor.New()
		defer printStats(run.Stderr, run.Metrics)
	}
	return runHeadless(ctx, run)
}

// shouldUseTUIMode reports whether the interactive screen should be used
func shouldUseTUIMode() bool {
	return !analyzeNoTUI && getOutputFormat() == "text" && !isVerbose() && analyzeOutputFile == ""
}

// runInteractive opens the TUI with url prefilled
func runInteractive(ctx context.Context, cfg *config.Config, path, url string) error {
	logPath, restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	log := GetLogger("cli")
	log.InfoWithFields("Starting interactive session", []logger.Field{logger.F("log_file", logPath)})

	// The UI owns the client from here and closes it on exit.
	client, err := newAnalyzer(&cfg.AI)
	if err != nil {
		return err
	}

	var watcher *config.Watcher
	if cfg.Output.AutoReload && path != "" {
		watcher, err = config.NewLoader().Watch(path)
		if err != nil {
			log.WarnWithFields("Config auto-reload disabled", []logger.Field{logger.Error(err)})
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	th, _ := theme.ByName(cfg.Output.Theme)
	return ui.Run(ui.Options{
		Context:     ctx,
		Analyzer:    client,
		AI:          cfg.AI,
		NewAnalyzer: uiAnalyzerFactory,
		Timeout:     analyzeTimeout,
		Simulator:   cfg.Simulator(),
		Theme:       th,
		DefaultURL:  url,
		TimeFormat:  cfg.Output.TimestampFormat,
		Width:       cfg.Output.Width,
		Clipboard:   report.SystemClipboard{},
		Watcher:     watcher,
		Logger:      GetLogger("ui"),
	})
}

// headlessRun holds everything a non-interactive scan needs
type headlessRun struct {
	Analyzer  scan.Analyzer
	Config    *config.Config
	Provider  string
	URL       string
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard report.Clipboard
	Now       func() time.Time
	Metrics   *monitor.Collector // nil disables timing
}

// trackedAnalyzer times each provider round trip
type trackedAnalyzer struct {
	scan.Analyzer
	metrics *monitor.Collector
}

func (a trackedAnalyzer) Analyze(ctx context.Context, url string) (string, error) {
	var markdown string
	err := a.metrics.Track(monitor.OperationAnalyze, func() error {
		var err error
		markdown, err = a.Analyzer.Analyze(ctx, url)
		return err
	})
	return markdown, err
}

// printStats writes the collected timings as a table
func printStats(w io.Writer, metrics *monitor.Collector) {
	out, err := monitor.FormatReport(metrics.GetSnapshot(), monitor.ReportFormatText)
	if err != nil {
		fmt.Fprintf(w, "%s Failed to format stats: %v\n", emoji.GetEmoji("warning"), err)
		return
	}
	fmt.Fprintf(w, "\n%s Scan statistics\n%s", emoji.GetEmoji("stats"), out)
}

// runHeadless drives the session with a Runner, printing progress to stderr
// and the formatted report to stdout or --output-file.
func runHeadless(ctx context.Context, run headlessRun) error {
	if run.Now == nil {
		run.Now = time.Now
	}
	if run.Clipboard == nil {
		run.Clipboard = report.SystemClipboard{}
	}

	var analyzer scan.Analyzer = run.Analyzer
	if run.Metrics != nil {
		analyzer = trackedAnalyzer{Analyzer: run.Analyzer, metrics: run.Metrics}
	}

	s := session.New(run.Config.Simulator())
	runner := session.NewRunner(s, analyzer,
		session.WithObserver(progressPrinter(run.Stderr)),
		session.WithClock(run.Now),
		session.WithRunnerLogger(GetLogger("session")),
	)

	start := time.Now()
	res, err := runner.Run(ctx, run.URL)
	if err != nil {
		return err
	}

	th, ok := theme.ByName(run.Config.Output.Theme)
	if !ok {
		th = theme.Default
	}
	width := run.Config.Output.Width
	if width == 0 {
		width = report.DefaultWidth
	}
	renderer := report.NewRenderer(
		report.WithWidth(width),
		report.WithStyles(report.NewStyles(th)),
		report.WithTimeFormat(run.Config.Output.TimestampFormat),
	)

	f, err := formatter.New(getOutputFormat(), formatter.Options{
		Color:    !noColor,
		Emoji:    !isEmojiDisabled(),
		Renderer: renderer,
	})
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	var output []byte
	err = run.Metrics.Track(monitor.OperationFormat, func() error {
		var err error
		output, err = f.Format(&formatter.Document{
			Result:   res,
			Provider: run.Provider,
			Model:    run.Config.AI.Model,
			Elapsed:  time.Since(start),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	err = run.Metrics.Track(monitor.OperationWrite, func() error {
		return handleOutputDestination(output, run.Stdout, run.Stderr)
	})
	if err != nil {
		return err
	}

	if analyzeCopy {
		err := run.Metrics.Track(monitor.OperationCopy, func() error {
			return report.Copy(run.Clipboard, res)
		})
		if err != nil {
			fmt.Fprintf(run.Stderr, "%s Copy failed: %v\n", emoji.GetEmoji("warning"), err)
		} else {
			fmt.Fprintf(run.Stderr, "%s Report Markdown copied to clipboard\n", emoji.GetEmoji("clipboard"))
		}
	}
	return nil
}

// progressPrinter reports simulated progress on w, one line per label change
func progressPrinter(w io.Writer) session.Observer {
	var last string
	return func(st session.State) {
		switch st.Status {
		case session.StatusScanning:
			if st.CurrentStep == last && !isVerbose() {
				return
			}
			last = st.CurrentStep
			fmt.Fprintf(w, "%s [%3d%%] %s\n", emoji.GetEmoji("scan"), st.Progress, st.CurrentStep)
		case session.StatusComplete:
			fmt.Fprintf(w, "%s [100%%] Report ready\n", emoji.GetEmoji("success"))
		case session.StatusError:
			fmt.Fprintf(w, "%s %s\n", emoji.GetEmoji("error"), st.Error)
		}
	}
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(output []byte, stdout, stderr io.Writer) error {
	if analyzeOutputFile == "" {
		_, err := stdout.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	fmt.Fprintf(stderr, "%s Output saved to: %s\n", emoji.GetEmoji("report"), analyzeOutputFile)
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// #nosec G304 - path is provided by the user running the command
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
