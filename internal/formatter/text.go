package formatter

import (
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"

	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
)

// textFormatter renders the report for a terminal, using go-termfmt for the
// scan summary and the report renderer for the body
type textFormatter struct {
	opts     *termfmt.TerminalOptions
	renderer *report.Renderer
}

// NewText creates a terminal formatter
func NewText(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji

	renderer := o.Renderer
	if renderer == nil {
		renderer = report.NewRenderer()
	}
	return &textFormatter{opts: opts, renderer: renderer}
}

func (f *textFormatter) Format(doc *Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	var b strings.Builder
	f.writeHeader(&b)
	f.writeSummary(&b, doc)
	b.WriteString(f.renderer.Body(doc.Result.Markdown))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// writeHeader writes the boxed report title
func (f *textFormatter) writeHeader(b *strings.Builder) {
	header := report.Title
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes scan metadata as a tree
func (f *textFormatter) writeSummary(b *strings.Builder, doc *Document) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Scan\n")

	items := []termfmt.TreeItem{
		{Label: "Host", Value: doc.Host()},
		{Label: "URL", Value: doc.Result.URL},
		{Label: "Scanned", Value: f.renderer.Timestamp(doc.Result.ScannedAt)},
	}
	if doc.Provider != "" {
		provider := doc.Provider
		if doc.Model != "" {
			provider += " (" + doc.Model + ")"
		}
		items = append(items, termfmt.TreeItem{Label: "Provider", Value: provider})
	}
	if doc.Elapsed > 0 {
		items = append(items, termfmt.TreeItem{Label: "Duration", Value: doc.Elapsed.Round(100 * time.Millisecond).String()})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")
}
