package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/krishimitra/krishi/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddCrop || m.state == StateAddReminder {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		body := msg.Height - v - 4
		if body < 3 {
			body = 3
		}
		m.upcoming.SetHeight(body)
		m.crops.SetHeight(body)
		m.reminders.SetSize(msg.Width-h, body)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if err := m.reload(); err != nil {
				m.status = "❌ " + err.Error()
			}
			return m, nil
		case key.Matches(msg, m.keys.AddCrop):
			m.openCropForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.AddReminder):
			m.openReminderForm()
			return m, m.form.Init()
		case m.state == StateUpcoming && key.Matches(msg, m.keys.Wider):
			m.window = min(m.window+windowStep, MaxWindowDays)
			m.populate()
			return m, nil
		case m.state == StateUpcoming && key.Matches(msg, m.keys.Narrower):
			m.window = max(m.window-windowStep, 0)
			m.populate()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateUpcoming:
		m.upcoming, cmd = m.upcoming.Update(msg)
	case StateCrops:
		m.crops, cmd = m.crops.Update(msg)
	case StateReminders:
		m.reminders, cmd = m.reminders.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previous
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == StateAddCrop {
			err = m.saveCrop()
		} else {
			err = m.saveReminder()
		}
		if err != nil {
			logger.Warn("Dashboard save failed", "error", err)
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.state = m.previous
		m.form = nil
	case huh.StateAborted:
		m.state = m.previous
		m.form = nil
	}
	return m, cmd
}
