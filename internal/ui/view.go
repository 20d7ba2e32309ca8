package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/123ABCabcdpogj/analysis-AI/internal/emoji"
	"github.com/123ABCabcdpogj/analysis-AI/internal/progress"
	"github.com/123ABCabcdpogj/analysis-AI/internal/report"
	"github.com/123ABCabcdpogj/analysis-AI/internal/session"
	"github.com/123ABCabcdpogj/analysis-AI/internal/ui/components"
)

// View renders the scan screen
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderInput()}
	if m.notice != "" {
		sections = append(sections, m.styles.Notice.Render(m.notice))
	}
	sections = append(sections, "")

	state := m.session.Snapshot()
	switch state.Status {
	case session.StatusScanning:
		sections = append(sections, m.renderScanning(state))
	case session.StatusComplete:
		sections = append(sections, m.renderComplete())
	case session.StatusError:
		sections = append(sections, m.renderError(state))
	default:
		sections = append(sections, m.styles.Hint.Render("Enter a website address and press enter to start a scan."))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.Prefix("scan") + "Site Scan")
	subtitle := m.styles.Subtitle.Render("AI website analysis")
	return title + "  " + subtitle
}

func (m *Model) renderInput() string {
	style := m.styles.Input
	if m.input.Focused() {
		style = m.styles.InputFocus
	}
	return style.Render(m.input.View())
}

func (m *Model) renderScanning(state session.State) string {
	step := m.spinner.View() + " " + m.styles.Step.Render(state.CurrentStep)
	bar := m.bar.ViewAs(float64(state.Progress)/100) + " " +
		m.styles.Percent.Render(fmt.Sprintf("%d%%", state.Progress))
	stages := m.styles.stageStrip(progress.Stages, m.stage).Render()

	return lipgloss.JoinVertical(lipgloss.Left, step, bar, "", stages)
}

func (m *Model) renderComplete() string {
	copyAction := components.Action{Key: "c", Label: report.CopyLabel}
	if m.copied {
		copyAction = components.Action{Label: emoji.Prefix("success") + report.CopiedLabel, Active: true}
	}
	bar := m.styles.actionBar(
		copyAction,
		components.Action{Key: "e", Label: report.ExportLabel, Disabled: !report.ExportEnabled()},
	)

	meta := ""
	if m.elapsed > 0 {
		meta = m.styles.Hint.Render(fmt.Sprintf("%sgenerated in %s", emoji.Prefix("clock"), m.elapsed.Round(100*time.Millisecond)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, bar.Render(), "  ", meta),
		m.viewport.View(),
	)
}

func (m *Model) renderError(state session.State) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.ErrorTitle.Render(emoji.Prefix("error")+"Scan failed"),
		"",
		state.Error,
		"",
		m.styles.Hint.Render(emoji.Prefix("retry")+"Press r to try again."),
	)
	width := min(m.width-4, 72)
	return m.styles.ErrorBox.Width(max(width, 20)).Render(body)
}
