package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-logparser"

	"github.com/123ABCabcdpogj/analysis-AI/internal/emoji"
	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
)

var (
	logsLevel  string
	logsTail   int
	logsFollow bool
)

func newLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show logs written by interactive sessions",
		Long: `Show the log file written while the interactive screen is open.

The TUI owns the terminal, so its logs go to a file in the XDG state
directory instead. Use --follow in a second terminal to watch a running
session. Press Ctrl+C to stop following.

Examples:
  sitescan logs
  sitescan logs --level warn --tail 20
  sitescan logs --follow`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}

	cmd.Flags().StringVarP(&logsLevel, "level", "l", "debug", "minimum level to show (debug, info, warn, error)")
	cmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "number of entries to show (0 shows all)")
	cmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep printing new entries as they are written")

	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	minLevel, err := parseLevel(logsLevel)
	if err != nil {
		return err
	}

	path, err := logFilePath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !fileExists(path) {
		fmt.Fprintf(out, "%s No log file yet at %s\n", emoji.GetEmoji("info"), path)
		return nil
	}

	offset, err := printLogFile(out, path, minLevel, logsTail)
	if err != nil {
		return err
	}
	if !logsFollow {
		return nil
	}

	follower, err := newLogFollower(path, offset)
	if err != nil {
		return err
	}
	defer follower.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return follower.Run(ctx, out, minLevel)
}

// parseLevel maps a --level value to its rank
func parseLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return 0, nil
	case "info":
		return 1, nil
	case "warn", "warning":
		return 2, nil
	case "error":
		return 3, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use debug, info, warn or error)", level)
	}
}

// levelRank ranks a parsed entry's level; unknown levels count as info
func levelRank(level string) int {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return 0
	case "warn", "warning":
		return 2
	case "error", "fatal", "panic":
		return 3
	default:
		return 1
	}
}

// parseLogEntries auto-detects the log format of content
func parseLogEntries(content string) ([]logparser.LogEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	entries, err := logparser.New().ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log entries: %w", err)
	}
	return entries, nil
}

// printLogFile prints the last tail entries at or above minLevel and returns
// the offset following passes should resume from.
func printLogFile(w io.Writer, path string, minLevel, tail int) (int64, error) {
	// #nosec G304 - path is under the XDG state directory
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read log file: %w", err)
	}

	entries, err := parseLogEntries(string(data))
	if err != nil {
		return 0, err
	}

	shown := make([]logparser.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if levelRank(entry.Level) >= minLevel {
			shown = append(shown, entry)
		}
	}
	if tail > 0 && len(shown) > tail {
		shown = shown[len(shown)-tail:]
	}

	for i := range shown {
		writeLogEntry(w, &shown[i])
	}
	return int64(len(data)), nil
}

func writeLogEntry(w io.Writer, entry *logparser.LogEntry) {
	fmt.Fprintf(w, "[%s] %-5s %s\n",
		entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
		strings.ToUpper(entry.Level),
		entry.Message)
}

// logFollower prints entries appended to a log file
type logFollower struct {
	watcher *fsnotify.Watcher
	file    *os.File
	log     *logger.Logger
	// pending holds a trailing line the writer has not finished yet
	pending []byte
}

// newLogFollower watches path and positions reads at offset
func newLogFollower(path string, offset int64) (*logFollower, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	// #nosec G304 - path is under the XDG state directory
	file, err := os.Open(path)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		_ = file.Close()
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to seek log file: %w", err)
	}

	return &logFollower{watcher: watcher, file: file, log: GetLogger("logs")}, nil
}

// Run prints new entries until ctx is cancelled
func (f *logFollower) Run(ctx context.Context, w io.Writer, minLevel int) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-f.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if err := f.printNew(w, minLevel); err != nil {
				f.log.DebugWithFields("skipping unreadable lines", []logger.Field{logger.Error(err)})
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			f.log.WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}

func (f *logFollower) printNew(w io.Writer, minLevel int) error {
	// A shorter file means it was truncated; start over.
	if info, err := f.file.Stat(); err == nil {
		if pos, err := f.file.Seek(0, io.SeekCurrent); err == nil && info.Size() < pos {
			if _, err := f.file.Seek(0, io.SeekStart); err != nil {
				return err
			}
			f.pending = nil
		}
	}

	data, err := io.ReadAll(f.file)
	if err != nil {
		return fmt.Errorf("failed to read new lines: %w", err)
	}

	data = append(f.pending, data...)
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		f.pending = data
		return nil
	}
	f.pending = append([]byte(nil), data[end+1:]...)

	entries, err := parseLogEntries(string(data[:end+1]))
	if err != nil {
		return err
	}
	for i := range entries {
		if levelRank(entries[i].Level) >= minLevel {
			writeLogEntry(w, &entries[i])
		}
	}
	return nil
}

// Close releases the watcher and file
func (f *logFollower) Close() {
	if err := f.watcher.Close(); err != nil {
		f.log.DebugWithFields("failed to close watcher", []logger.Field{logger.Error(err)})
	}
	if err := f.file.Close(); err != nil {
		f.log.DebugWithFields("failed to close log file", []logger.Field{logger.Error(err)})
	}
}
