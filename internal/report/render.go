package report

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
)

const (
	// Title heads every report.
	Title = "Analysis Report"

	DefaultWidth      = 80
	DefaultTimeFormat = "Jan 2, 2006 3:04 PM"

	minWidth = 20
)

// Renderer turns a completed analysis into a styled terminal document. It
// never fails: input goldmark cannot structure is shown as text.
type Renderer struct {
	styles     Styles
	width      int
	timeFormat string
	location   *time.Location
	md         goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= minWidth {
			r.width = width
		} else if width > 0 {
			r.width = minWidth
		}
	}
}

// WithStyles replaces the theme-derived styles.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// WithTimeFormat sets the layout used for the scan timestamp.
func WithTimeFormat(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.timeFormat = layout
		}
	}
}

// WithLocation sets the zone the scan timestamp is shown in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// NewRenderer creates a renderer using the default theme unless overridden.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		styles:     NewStyles(theme.Default),
		width:      DefaultWidth,
		timeFormat: DefaultTimeFormat,
		location:   time.Local,
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render returns header and body for res.
func (r *Renderer) Render(res *session.Result) string {
	if res == nil {
		return ""
	}
	return r.Header(res) + "\n\n" + r.Body(res.Markdown)
}

// Header shows the report title, the scanned host and when it was scanned.
func (r *Renderer) Header(res *session.Result) string {
	lines := []string{
		r.styles.ReportTitle.Render(Title),
		r.styles.Host.Render(Hostname(res.URL)) + "  " +
			r.styles.Timestamp.Render(r.Timestamp(res.ScannedAt)),
	}
	return r.styles.Header.Render(strings.Join(lines, "\n"))
}

// Timestamp formats t in the renderer's zone and layout.
func (r *Renderer) Timestamp(t time.Time) string {
	return t.In(r.location).Format(r.timeFormat)
}

// Hostname returns the host of rawURL, or rawURL itself when it has none.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

// Body renders markdown.
func (r *Renderer) Body(markdown string) string {
	src := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(src))

	out := r.blocks(doc, src, r.width, "\n\n")
	if strings.TrimSpace(out) == "" && strings.TrimSpace(markdown) != "" {
		return r.wrap(markdown, r.width)
	}
	return out
}

func (r *Renderer) blocks(parent ast.Node, src []byte, width int, sep string) string {
	var parts []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := r.block(n, src, width); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, sep)
}

func (r *Renderer) block(n ast.Node, src []byte, width int) string {
	switch n := n.(type) {
	case *ast.Heading:
		return r.heading(n.Level, r.inline(n, src), width)
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inline(n, src), width)
	case *ast.List:
		return r.list(n, src, width)
	case *ast.Blockquote:
		inner := r.blocks(n, src, width-2, "\n\n")
		return r.styles.Quote.Render(inner)
	case *ast.FencedCodeBlock:
		return r.code(n.Lines(), src)
	case *ast.CodeBlock:
		return r.code(n.Lines(), src)
	case *ast.HTMLBlock:
		return r.styles.Muted.Render(strings.TrimRight(segments(n.Lines(), src), "\n"))
	case *ast.ThematicBreak:
		return r.styles.Rule.Render(strings.Repeat("─", width))
	case *east.Table:
		return r.table(n, src, width)
	default:
		if n.HasChildren() {
			return r.blocks(n, src, width, "\n\n")
		}
		return ""
	}
}

func (r *Renderer) heading(level int, content string, width int) string {
	switch level {
	case 1:
		return r.styles.Title.Width(width).Render(content)
	case 2:
		return r.styles.Section.Render(ansi.Wordwrap(content, width-2, ""))
	case 3:
		return r.styles.Subsection.Render(ansi.Wordwrap(content, width, ""))
	default:
		return r.styles.Heading.Render(ansi.Wordwrap(content, width, ""))
	}
}

func (r *Renderer) list(l *ast.List, src []byte, width int) string {
	number := l.Start
	if number == 0 {
		number = 1
	}

	var items []string
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", number)
			number++
		}
		indent := lipgloss.Width(marker) + 1

		body := r.blocks(item, src, width-indent, "\n")
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			if i == 0 {
				lines[i] = r.styles.Marker.Render(marker) + " " + line
			} else if line != "" {
				lines[i] = strings.Repeat(" ", indent) + line
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}

	sep := "\n"
	if !l.IsTight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func (r *Renderer) code(lines *text.Segments, src []byte) string {
	body := strings.TrimRight(segments(lines, src), "\n")
	return r.styles.CodeBlock.Render(body)
}

func (r *Renderer) table(t *east.Table, src []byte, width int) string {
	var headers []string
	var rows [][]string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell, src))
		}
		if _, ok := row.(*east.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Rule).
		Headers(headers...).
		Rows(rows...)
	if out := tbl.String(); lipgloss.Width(out) > width {
		return tbl.Width(width).String()
	}
	return tbl.String()
}

func (r *Renderer) inline(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			switch {
			case c.HardLineBreak():
				b.WriteString("\n")
			case c.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.CodeSpan:
			b.WriteString(r.styles.Code.Render(plain(c, src)))
		case *ast.Emphasis:
			content := r.inline(c, src)
			if c.Level >= 2 {
				b.WriteString(r.styles.Strong.Render(content))
			} else {
				b.WriteString(r.styles.Emphasis.Render(content))
			}
		case *ast.Link:
			b.WriteString(r.link(r.inline(c, src), string(c.Destination)))
		case *ast.AutoLink:
			b.WriteString(r.styles.Link.Render(string(c.URL(src))))
		case *ast.Image:
			alt := plain(c, src)
			if alt == "" {
				alt = string(c.Destination)
			}
			b.WriteString(r.styles.Muted.Render("[image: " + alt + "]"))
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				b.Write(seg.Value(src))
			}
		case *east.Strikethrough:
			b.WriteString(r.styles.Strike.Render(r.inline(c, src)))
		case *east.TaskCheckBox:
			if c.IsChecked {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		default:
			b.WriteString(r.inline(c, src))
		}
	}
	return b.String()
}

func (r *Renderer) link(label, dest string) string {
	if label == "" || label == dest {
		return r.styles.Link.Render(dest)
	}
	return r.styles.Link.Render(label) + " " + r.styles.URL.Render("("+dest+")")
}

func (r *Renderer) wrap(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return r.styles.Paragraph.Render(ansi.Wordwrap(s, width, ""))
}

// plain collects the unstyled text below n.
func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func segments(lines *text.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
