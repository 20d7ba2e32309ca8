package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

const sampleLog = `{"time":"2025-03-04T15:07:00Z","level":"debug","msg":"requesting analysis","component":"scan"}
{"time":"2025-03-04T15:07:01Z","level":"info","msg":"analysis complete","component":"scan"}
{"time":"2025-03-04T15:07:02Z","level":"warn","msg":"stale result","component":"session"}
{"time":"2025-03-04T15:07:03Z","level":"error","msg":"analysis failed","component":"scan"}
`

func writeLogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitescan.log")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write log file: %v", err)
	}
	return path
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"debug", 0, false},
		{"INFO", 1, false},
		{"warning", 2, false},
		{"error", 3, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLevel(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestPrintLogFile(t *testing.T) {
	path := writeLogFile(t, sampleLog)

	tests := []struct {
		name     string
		minLevel int
		tail     int
		want     []string
		notWant  []string
	}{
		{
			name:     "all entries",
			minLevel: 0,
			want:     []string{"requesting analysis", "analysis complete", "stale result", "analysis failed"},
		},
		{
			name:     "warn and above",
			minLevel: 2,
			want:     []string{"stale result", "analysis failed"},
			notWant:  []string{"requesting analysis", "analysis complete"},
		},
		{
			name:     "tail keeps the newest",
			minLevel: 0,
			tail:     1,
			want:     []string{"ERROR", "analysis failed"},
			notWant:  []string{"stale result"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			offset, err := printLogFile(&buf, path, tt.minLevel, tt.tail)
			if err != nil {
				t.Fatalf("printLogFile() error = %v", err)
			}
			if offset != int64(len(sampleLog)) {
				t.Errorf("offset = %d, want %d", offset, len(sampleLog))
			}
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("output should not contain %q:\n%s", notWant, out)
				}
			}
		})
	}
}

func TestPrintLogFile_Empty(t *testing.T) {
	path := writeLogFile(t, "")

	var buf bytes.Buffer
	if _, err := printLogFile(&buf, path, 0, 0); err != nil {
		t.Fatalf("printLogFile() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogFollower(t *testing.T) {
	path := writeLogFile(t, sampleLog)

	follower, err := newLogFollower(path, int64(len(sampleLog)))
	if err != nil {
		t.Fatalf("newLogFollower() error = %v", err)
	}
	defer follower.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- follower.Run(ctx, &out, 2) }()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	_, _ = file.WriteString(`{"time":"2025-03-04T15:08:00Z","level":"info","msg":"quiet line","component":"ui"}` + "\n" +
		`{"time":"2025-03-04T15:08:01Z","level":"error","msg":"copy failed","component":"ui"}` + "\n")
	_ = file.Close()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "copy failed") && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "copy failed") {
		t.Errorf("follower did not print the new entry: %q", got)
	}
	if strings.Contains(got, "quiet line") || strings.Contains(got, "stale result") {
		t.Errorf("follower printed filtered or old entries: %q", got)
	}
}

func TestLogFollower_PartialLine(t *testing.T) {
	path := writeLogFile(t, sampleLog)

	follower, err := newLogFollower(path, int64(len(sampleLog)))
	if err != nil {
		t.Fatalf("newLogFollower() error = %v", err)
	}
	defer follower.Close()

	line := `{"time":"2025-03-04T15:08:01Z","level":"error","msg":"copy failed","component":"ui"}` + "\n"
	half := len(line) / 2

	appendLog(t, path, line[:half])
	var out bytes.Buffer
	if err := follower.printNew(&out, 0); err != nil {
		t.Fatalf("printNew() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unfinished line was printed: %q", out.String())
	}

	appendLog(t, path, line[half:])
	if err := follower.printNew(&out, 0); err != nil {
		t.Fatalf("printNew() error = %v", err)
	}
	if !strings.Contains(out.String(), "copy failed") {
		t.Errorf("completed line was not printed: %q", out.String())
	}
	if len(follower.pending) != 0 {
		t.Errorf("pending = %q, want empty", follower.pending)
	}
}

func appendLog(t *testing.T, path, text string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer func() { _ = file.Close() }()
	if _, err := file.WriteString(text); err != nil {
		t.Fatalf("append log file: %v", err)
	}
}

func TestLogsCommand_NoFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()

	out, err := execute(t, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(out, "No log file yet") {
		t.Errorf("unexpected output: %q", out)
	}
}
