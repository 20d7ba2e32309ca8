package report

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"

	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
)

const (
	CopyLabel   = "Copy Text"
	CopiedLabel = "Copied"
	ExportLabel = "Export PDF"

	// CopiedFor is how long the copy confirmation stays visible.
	CopiedFor = 2 * time.Second
)

// ErrExportUnavailable is returned by Export; the action is shown disabled.
var ErrExportUnavailable = errors.New("export is not available yet")

// ErrNothingToCopy is returned when there is no completed report.
var ErrNothingToCopy = errors.New("no report to copy")

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// Copy places the raw Markdown of res on cb, unrendered.
func Copy(cb Clipboard, res *session.Result) error {
	if res == nil {
		return ErrNothingToCopy
	}
	return cb.WriteAll(res.Markdown)
}

// Export is a placeholder for document export.
func Export(*session.Result) error {
	return ErrExportUnavailable
}

// ExportEnabled reports whether Export does anything.
func ExportEnabled() bool {
	return false
}
