package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/utils"
)

type CropFormModel struct {
	Crop    string
	Planted string
	Area    string
}

type ReminderFormModel struct {
	Title       string
	Date        string
	Description string
}

func validDate(s string) error {
	_, err := utils.ParseDate(strings.TrimSpace(s))
	return err
}

// NewCropForm creates the form for recording a planting
func NewCropForm(fm *CropFormModel, cropKeys []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Crop").
				Options(huh.NewOptions(cropKeys...)...).
				Value(&fm.Crop),
			huh.NewInput().
				Title("Planting date (YYYY-MM-DD)").
				Value(&fm.Planted).
				Validate(validDate),
			huh.NewInput().
				Title("Area (acres)").
				Value(&fm.Area).
				Validate(func(s string) error {
					f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("area must be a number")
					}
					if !utils.ValidArea(f) {
						return fmt.Errorf("area must be a positive number of acres")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewReminderForm creates the form for adding a reminder
func NewReminderForm(fm *ReminderFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(validDate),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) openCropForm() {
	m.cropForm = &CropFormModel{
		Crop:    m.ctx.Catalog.DefaultKey(),
		Planted: utils.FormatDate(m.ctx.Today()),
	}
	m.form = NewCropForm(m.cropForm, m.ctx.Catalog.Keys())
	m.formError = ""
	m.previous = m.state
	m.state = StateAddCrop
}

func (m *Model) openReminderForm() {
	m.reminderForm = &ReminderFormModel{Date: utils.FormatDate(m.ctx.Today())}
	m.form = NewReminderForm(m.reminderForm)
	m.formError = ""
	m.previous = m.state
	m.state = StateAddReminder
}

func (m *Model) saveCrop() error {
	planted, err := utils.ParseDate(strings.TrimSpace(m.cropForm.Planted))
	if err != nil {
		return err
	}
	area, err := strconv.ParseFloat(strings.TrimSpace(m.cropForm.Area), 64)
	if err != nil {
		return fmt.Errorf("invalid area %q", m.cropForm.Area)
	}
	holding, err := m.ctx.Farm.AddCrop(m.user.Mobile, m.cropForm.Crop, planted, area)
	if err != nil {
		return err
	}
	m.status = fmt.Sprintf("✓ Added %s planted %s", holding.Name, holding.PlantingDate)
	return m.reload()
}

func (m *Model) saveReminder() error {
	reminder, err := m.ctx.Farm.AddReminder(m.user.Mobile, farm.ReminderInput{
		Title:       m.reminderForm.Title,
		Date:        strings.TrimSpace(m.reminderForm.Date),
		Description: m.reminderForm.Description,
	})
	if err != nil {
		return err
	}
	m.status = fmt.Sprintf("✓ Added reminder #%d for %s", reminder.ID, reminder.Date)
	return m.reload()
}
