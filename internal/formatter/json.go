package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	URL        string    `json:"url"`
	Host       string    `json:"host"`
	ScannedAt  time.Time `json:"scanned_at"`
	Provider   string    `json:"provider,omitempty"`
	Model      string    `json:"model,omitempty"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	Markdown   string    `json:"markdown"`
}

func (f *jsonFormatter) Format(doc *Document) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	output := &JSONOutput{
		URL:        doc.Result.URL,
		Host:       doc.Host(),
		ScannedAt:  doc.Result.ScannedAt,
		Provider:   doc.Provider,
		Model:      doc.Model,
		DurationMS: doc.Elapsed.Milliseconds(),
		Markdown:   doc.Result.Markdown,
	}

	return json.MarshalIndent(output, "", "  ")
}
