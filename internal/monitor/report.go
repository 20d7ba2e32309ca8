package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	md "github.com/nao1215/markdown"
)

// ReportFormat represents the output format for reports
type ReportFormat string

const (
	ReportFormatJSON     ReportFormat = "json"
	ReportFormatText     ReportFormat = "text"
	ReportFormatMarkdown ReportFormat = "markdown"
)

var reportHeaders = []string{"Operation", "Count", "Errors", "Avg", "Min", "Max"}

// FormatReport renders snapshot in format. Text output is a bordered table
// followed by a memory line.
func FormatReport(snapshot MetricsSnapshot, format ReportFormat) (string, error) {
	switch format {
	case ReportFormatJSON:
		return formatJSON(snapshot)
	case ReportFormatText, "":
		return formatText(snapshot), nil
	case ReportFormatMarkdown:
		return formatMarkdown(snapshot)
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func formatJSON(snapshot MetricsSnapshot) (string, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return string(data), nil
}

func formatText(snapshot MetricsSnapshot) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(reportHeaders...).
		Rows(operationRows(snapshot)...)

	return fmt.Sprintf("%s\nMemory: %s allocated, %s from system, %d GC runs, %d goroutines\n",
		tbl.String(),
		formatBytes(snapshot.Memory.CurrentAlloc),
		formatBytes(snapshot.Memory.Sys),
		snapshot.Memory.NumGC,
		snapshot.Goroutines,
	)
}

func formatMarkdown(snapshot MetricsSnapshot) (string, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Scan Metrics")
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: reportHeaders,
		Rows:   operationRows(snapshot),
	})
	doc.PlainText("")
	doc.PlainText(fmt.Sprintf("Memory: %s allocated, %d GC runs.",
		formatBytes(snapshot.Memory.CurrentAlloc), snapshot.Memory.NumGC))

	if err := doc.Build(); err != nil {
		return "", fmt.Errorf("failed to build metrics markdown: %w", err)
	}
	return buf.String(), nil
}

func operationRows(snapshot MetricsSnapshot) [][]string {
	rows := make([][]string, 0, len(snapshot.Operations))
	for _, op := range snapshot.Operations {
		rows = append(rows, []string{
			string(op.Operation),
			strconv.FormatInt(op.Count, 10),
			strconv.FormatInt(op.ErrorCount, 10),
			formatDuration(op.AvgTime()),
			formatDuration(op.MinTime),
			formatDuration(op.MaxTime),
		})
	}
	return rows
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
