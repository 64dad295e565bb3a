package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderForm()
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Click-To-Call"))
	b.WriteString("\n\n")

	labels := [fieldPhone + 1]string{"Domain:", "Extension:", "Key:", "Phone Number:"}
	for i := range m.inputs {
		label := styles.Label.Render(labels[i])
		if m.focus == i {
			label = styles.FocusLabel.Render(labels[i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
		b.WriteString("\n")
	}

	check := "[ ]"
	if m.autoAnswer {
		check = "[x]"
	}
	autoLabel := styles.Label
	if m.focus == fieldAutoAnswer {
		autoLabel = styles.FocusLabel
	}
	b.WriteString(autoLabel.Render("Auto Answer:"))
	b.WriteString(check)
	b.WriteString("\n\n")

	if m.status != "" {
		statusStyle := styles.StatusOK
		if !m.statusOK {
			statusStyle = styles.StatusErr
		}
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("enter call · ctrl+s save · f1 help · esc quit"))

	return styles.Frame.Render(b.String())
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	items := []struct {
		keys string
		desc string
	}{
		{"tab / shift+tab", "Move between fields"},
		{"enter", "Place call (snapshot of current form)"},
		{"ctrl+s", "Save domain, extension and key"},
		{"ctrl+a / space", "Toggle auto answer"},
		{"f1", "Toggle this help"},
		{"esc / ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, item := range items {
		b.WriteString(styles.FocusLabel.Width(18).Render(item.keys))
		b.WriteString(item.desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Press any key to close"))

	return styles.Frame.Render(b.String())
}
