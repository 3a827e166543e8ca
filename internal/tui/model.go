package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

type SessionState int

// Tab states come first so they index the tab titles.
const (
	StateUpcoming SessionState = iota
	StateCrops
	StateReminders
	StateAddCrop
	StateAddReminder
)

var tabTitles = []string{"Upcoming", "Crops", "Reminders"}

// MaxWindowDays bounds the look-ahead the dashboard can be widened to.
const MaxWindowDays = 365

type ReminderItem struct {
	Reminder models.Reminder
}

func (i ReminderItem) Title() string {
	return fmt.Sprintf("%s  %s", i.Reminder.Date, i.Reminder.Title)
}

func (i ReminderItem) Description() string {
	if i.Reminder.Description == "" {
		return fmt.Sprintf("#%d", i.Reminder.ID)
	}
	return i.Reminder.Description
}

func (i ReminderItem) FilterValue() string { return i.Reminder.Title }

type Model struct {
	ctx          *cli.Context
	user         models.UserRecord
	state        SessionState
	previous     SessionState
	keys         KeyMap
	help         help.Model
	upcoming     table.Model
	crops        table.Model
	reminders    list.Model
	form         *huh.Form
	cropForm     *CropFormModel
	reminderForm *ReminderFormModel
	window       int
	tasks        []models.Task
	status       string
	formError    string
	quitting     bool
	width        int
	height       int
}

func NewModel(ctx *cli.Context, user models.UserRecord) Model {
	upcoming := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "When", Width: 12},
			{Title: "Type", Width: 12},
			{Title: "Task", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	crops := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Crop", Width: 22},
			{Title: "Planted", Width: 12},
			{Title: "Acres", Width: 7},
			{Title: "Stage", Width: 24},
			{Title: "Harvest", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	reminders := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	reminders.Title = "Reminders"
	reminders.SetShowTitle(false)
	reminders.SetShowHelp(false)
	reminders.SetFilteringEnabled(false)

	m := Model{
		ctx:       ctx,
		user:      user,
		state:     StateUpcoming,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		upcoming:  upcoming,
		crops:     crops,
		reminders: reminders,
		window:    constants.DefaultWindowDays,
	}
	m.populate()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateUpcoming:
		keys = append(keys, m.keys.Wider, m.keys.Narrower)
	case StateCrops:
		keys = append(keys, m.keys.AddCrop)
	case StateReminders:
		keys = append(keys, m.keys.AddReminder)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.AddCrop, m.keys.AddReminder, m.keys.Wider, m.keys.Narrower}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload re-reads the farmer's record from the store and rebuilds the views.
func (m *Model) reload() error {
	user, found, err := m.ctx.Farm.GetUser(m.user.Mobile)
	if err != nil {
		return err
	}
	if found {
		m.user = user
	}
	m.populate()
	return nil
}

func (m *Model) populate() {
	today := m.ctx.Today()

	m.tasks = m.ctx.Scheduler.TasksForUser(m.user, m.window, today)
	rows := make([]table.Row, 0, len(m.tasks))
	for _, t := range m.tasks {
		rows = append(rows, table.Row{utils.FormatDate(t.Date), when(t.DaysUntil), string(t.Kind), t.Title})
	}
	m.upcoming.SetRows(rows)

	overview := m.ctx.Scheduler.Overview(m.user, today)
	rows = make([]table.Row, 0, len(overview))
	for i, st := range overview {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			st.Holding.Name,
			st.Holding.PlantingDate,
			fmt.Sprintf("%.2f", st.Holding.AreaAcres),
			st.CurrentStage,
			utils.FormatDate(st.Calendar.HarvestDate),
		})
	}
	m.crops.SetRows(rows)

	items := make([]list.Item, len(m.user.Reminders))
	for i, r := range m.user.Reminders {
		items[i] = ReminderItem{Reminder: r}
	}
	m.reminders.SetItems(items)
}

func when(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
