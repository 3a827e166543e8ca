package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateUpcoming:
		content = m.viewUpcoming()
	case StateCrops:
		content = m.viewCrops()
	case StateReminders:
		content = m.viewReminders()
	case StateAddCrop, StateAddReminder:
		content = m.viewForm()
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	title := fmt.Sprintf("🌾 Krishi Mitra  %s", m.user.Name)
	if m.user.Location != "" {
		title += " · " + m.user.Location
	}
	return headerStyle.Render(title)
}

func (m Model) viewTabs() string {
	active := m.state
	if m.state == StateAddCrop || m.state == StateAddReminder {
		active = m.previous
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewUpcoming() string {
	caption := fmt.Sprintf("Next %d days", m.window)
	if len(m.tasks) == 0 {
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			caption, "", warningStyle.Render("No upcoming tasks")))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, caption, m.upcoming.View()))
}

func (m Model) viewCrops() string {
	if len(m.user.Crops) == 0 {
		return docStyle.Render(warningStyle.Render("No crops recorded. Press c to add one."))
	}
	return docStyle.Render(m.crops.View())
}

func (m Model) viewReminders() string {
	if len(m.user.Reminders) == 0 {
		return docStyle.Render(warningStyle.Render("No reminders. Press r to add one."))
	}
	return docStyle.Render(m.reminders.View())
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render("Error: "+m.formError))
	}
	return docStyle.Render(view)
}
