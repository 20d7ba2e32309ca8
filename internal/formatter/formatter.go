package formatter

import (
	"fmt"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(doc *Document) ([]byte, error)
}

// Document is a completed scan plus how it was produced
type Document struct {
	Result   *session.Result
	Provider string
	Model    string
	Elapsed  time.Duration
}

// Host returns the scanned hostname
func (d *Document) Host() string {
	return report.Hostname(d.Result.URL)
}

// Options configures the formatter returned by New
type Options struct {
	Color    bool
	Emoji    bool
	Renderer *report.Renderer
}

// New returns the formatter for format: text, markdown or json
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "text", "":
		return NewText(opts), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, markdown or json)", format)
	}
}

func checkDocument(doc *Document) error {
	if doc == nil || doc.Result == nil {
		return fmt.Errorf("no completed analysis to format")
	}
	return nil
}
