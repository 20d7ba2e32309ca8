package cli

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/adrg/xdg"

	"github.com/123ABCabcdpogj/analysis-AI/internal/logger"
)

// logFileName is where logs go while the TUI owns the terminal
const logFileName = "sitescan/sitescan.log"

// logToFile is set while logs are redirected; file logs keep every level
var logToFile atomic.Bool

// GetLogger returns a logger for component that follows --verbose
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, func() bool {
		return isVerbose() || logToFile.Load()
	})
}

// logFilePath resolves the log file under the XDG state directory
func logFilePath() (string, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}
	return path, nil
}

// redirectLogs sends log output, as JSON lines, to the XDG state directory so
// it does not draw over the TUI. The returned func restores stderr.
func redirectLogs() (string, func(), error) {
	path, err := logFilePath()
	if err != nil {
		return "", func() {}, err
	}

	// #nosec G304 - path is under the XDG state directory
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.SetOutput(file)
	logger.SetFormat(logger.FormatJSON)
	logToFile.Store(true)
	return path, func() {
		logToFile.Store(false)
		logger.SetOutput(nil)
		_ = file.Close()
	}, nil
}
