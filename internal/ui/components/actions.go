package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Action is a labelled control in an action bar
type Action struct {
	Key      string
	Label    string
	Disabled bool
	Active   bool
}

// ActionBar renders report actions as buttons
type ActionBar struct {
	Actions []Action

	Button         lipgloss.Style
	ActiveButton   lipgloss.Style
	DisabledButton lipgloss.Style
}

// NewActionBar creates a bar with plain bordered buttons
func NewActionBar(actions ...Action) *ActionBar {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	return &ActionBar{
		Actions:        actions,
		Button:         base,
		ActiveButton:   base.Bold(true),
		DisabledButton: base.Faint(true),
	}
}

// Render lays the buttons out horizontally
func (b *ActionBar) Render() string {
	buttons := make([]string, 0, len(b.Actions)*2)
	for i, a := range b.Actions {
		label := a.Label
		if a.Key != "" && !a.Disabled {
			label = "[" + a.Key + "] " + label
		}

		style := b.Button
		switch {
		case a.Disabled:
			style = b.DisabledButton
		case a.Active:
			style = b.ActiveButton
		}

		if i > 0 {
			buttons = append(buttons, " ")
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

// Plain returns the labels without styling, for logs and tests
func (b *ActionBar) Plain() string {
	labels := make([]string, 0, len(b.Actions))
	for _, a := range b.Actions {
		l := a.Label
		if a.Disabled {
			l += " (disabled)"
		}
		labels = append(labels, l)
	}
	return strings.Join(labels, " | ")
}
