package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StageStrip shows the scan stages with one of them highlighted
type StageStrip struct {
	Stages  []string
	Current int

	ActiveStyle lipgloss.Style
	DoneStyle   lipgloss.Style
	IdleStyle   lipgloss.Style
}

// NewStageStrip creates a strip over stages
func NewStageStrip(stages []string) *StageStrip {
	return &StageStrip{
		Stages:      stages,
		ActiveStyle: lipgloss.NewStyle().Bold(true),
		DoneStyle:   lipgloss.NewStyle(),
		IdleStyle:   lipgloss.NewStyle().Faint(true),
	}
}

// Render renders one line per stage. Stages before the highlighted one are
// marked done; the highlight wraps around so the strip keeps moving.
func (s *StageStrip) Render() string {
	lines := make([]string, 0, len(s.Stages))
	for i, stage := range s.Stages {
		switch {
		case i == s.Current:
			lines = append(lines, s.ActiveStyle.Render("▶ "+stage))
		case i < s.Current:
			lines = append(lines, s.DoneStyle.Render("✓ "+stage))
		default:
			lines = append(lines, s.IdleStyle.Render("  "+stage))
		}
	}
	return strings.Join(lines, "\n")
}
