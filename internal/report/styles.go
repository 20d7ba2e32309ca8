package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
)

// Styles holds the lipgloss styles for each Markdown element.
type Styles struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	Subsection lipgloss.Style
	Heading    lipgloss.Style
	Paragraph  lipgloss.Style
	Marker     lipgloss.Style
	Strong     lipgloss.Style
	Emphasis   lipgloss.Style
	Strike     lipgloss.Style
	Code       lipgloss.Style
	CodeBlock  lipgloss.Style
	Link       lipgloss.Style
	URL        lipgloss.Style
	Quote      lipgloss.Style
	Rule       lipgloss.Style
	Muted      lipgloss.Style

	// header
	ReportTitle lipgloss.Style
	Host        lipgloss.Style
	Timestamp   lipgloss.Style
	Header      lipgloss.Style
}

// NewStyles derives report styles from t.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),

		Section: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Highlight).
			Bold(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(t.Accent).
			PaddingLeft(1),

		Subsection: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Heading: lipgloss.NewStyle().
			Bold(true),

		Paragraph: lipgloss.NewStyle(),

		Marker: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Strong: lipgloss.NewStyle().
			Bold(true),

		Emphasis: lipgloss.NewStyle().
			Italic(true),

		Strike: lipgloss.NewStyle().
			Strikethrough(true),

		Code: lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.CodeBg),

		CodeBlock: lipgloss.NewStyle().
			Background(t.CodeBg).
			Padding(0, 1),

		Link: lipgloss.NewStyle().
			Foreground(t.Info).
			Underline(true),

		URL: lipgloss.NewStyle().
			Foreground(t.Muted),

		Quote: lipgloss.NewStyle().
			Foreground(t.Secondary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(t.Border).
			PaddingLeft(1),

		Rule: lipgloss.NewStyle().
			Foreground(t.Border),

		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),

		ReportTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Host: lipgloss.NewStyle().
			Foreground(t.Accent),

		Timestamp: lipgloss.NewStyle().
			Foreground(t.Muted),

		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
