package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/123ABCabcdpogj/analysis-AI/internal/theme"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ui/components"
)

// Styles holds the lipgloss styles of the scan screen
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Input      lipgloss.Style
	InputFocus lipgloss.Style
	Notice     lipgloss.Style
	Step       lipgloss.Style
	Percent    lipgloss.Style
	Hint       lipgloss.Style
	ErrorBox   lipgloss.Style
	ErrorTitle lipgloss.Style
	Spinner    lipgloss.Style

	StageActive lipgloss.Style
	StageDone   lipgloss.Style
	StageIdle   lipgloss.Style

	Button         lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonDisabled lipgloss.Style
}

// NewStyles derives screen styles from t
func NewStyles(t theme.Theme) Styles {
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Input:      input,
		InputFocus: input.BorderForeground(t.Primary),
		Notice: lipgloss.NewStyle().
			Foreground(t.Warning),
		Step: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Percent: lipgloss.NewStyle().
			Foreground(t.Secondary),
		Hint: lipgloss.NewStyle().
			Foreground(t.Muted),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Error).
			Padding(1, 2),
		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
		Spinner: lipgloss.NewStyle().
			Foreground(t.Primary),

		StageActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		StageDone: lipgloss.NewStyle().
			Foreground(t.Success),
		StageIdle: lipgloss.NewStyle().
			Foreground(t.Muted),

		Button: button,
		ButtonActive: button.
			BorderForeground(t.Success).
			Foreground(t.Success).
			Bold(true),
		ButtonDisabled: button.
			Foreground(t.Muted).
			Faint(true),
	}
}

func (s Styles) stageStrip(stages []string, current int) *components.StageStrip {
	strip := components.NewStageStrip(stages)
	strip.Current = current
	strip.ActiveStyle = s.StageActive
	strip.DoneStyle = s.StageDone
	strip.IdleStyle = s.StageIdle
	return strip
}

func (s Styles) actionBar(actions ...components.Action) *components.ActionBar {
	bar := components.NewActionBar(actions...)
	bar.Button = s.Button
	bar.ActiveButton = s.ButtonActive
	bar.DisabledButton = s.ButtonDisabled
	return bar
}
