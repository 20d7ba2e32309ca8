package formatter

import (
	"bytes"
	"time"

	"github.com/nao1215/markdown"
)

// markdownFormatter wraps the generated report with a metadata table
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(doc *Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Analysis Report")
	md.PlainText("")

	rows := [][]string{
		{"Host", doc.Host()},
		{"URL", doc.Result.URL},
		{"Scanned", doc.Result.ScannedAt.Format(time.RFC3339)},
	}
	if doc.Provider != "" {
		rows = append(rows, []string{"Provider", doc.Provider})
	}
	if doc.Model != "" {
		rows = append(rows, []string{"Model", doc.Model})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText(doc.Result.Markdown)

	if err := md.Build(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
