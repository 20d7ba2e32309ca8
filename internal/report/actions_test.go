package report

import (
	"errors"
	"testing"
	"time"

	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
)

type memoryClipboard struct {
	text string
	err  error
}

func (m *memoryClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestCopy_RawMarkdown(t *testing.T) {
	markdown := "# Ray's\n\n- **Bold** item\n\n```\ncode\n```\n"
	res := &session.Result{Markdown: markdown, URL: "https://example.com", ScannedAt: time.Now()}

	cb := &memoryClipboard{}
	if err := Copy(cb, res); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if cb.text != markdown {
		t.Errorf("copied %q, want raw markdown %q", cb.text, markdown)
	}
}

func TestCopy_Errors(t *testing.T) {
	if err := Copy(&memoryClipboard{}, nil); !errors.Is(err, ErrNothingToCopy) {
		t.Errorf("Copy(nil) error = %v", err)
	}

	boom := errors.New("no clipboard utility")
	err := Copy(&memoryClipboard{err: boom}, &session.Result{Markdown: "x"})
	if !errors.Is(err, boom) {
		t.Errorf("Copy() error = %v, want %v", err, boom)
	}
}

func TestExport_Disabled(t *testing.T) {
	if ExportEnabled() {
		t.Error("export should be disabled")
	}
	if err := Export(&session.Result{Markdown: "x"}); !errors.Is(err, ErrExportUnavailable) {
		t.Errorf("Export() error = %v", err)
	}
}
