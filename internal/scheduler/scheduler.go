package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/krishimitra/krishi/internal/calendar"
	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/utils"
)

// Scheduler merges a user's reminders and projected crop events into a
// single list of upcoming tasks.
type Scheduler struct {
	store     storage.Provider
	projector *calendar.Projector
}

func New(store storage.Provider, projector *calendar.Projector) *Scheduler {
	return &Scheduler{store: store, projector: projector}
}

// UpcomingTasks returns the tasks of mobile dated within [today, today+windowDays].
// An unknown user has no tasks.
func (s *Scheduler) UpcomingTasks(mobile string, windowDays int, today time.Time) ([]models.Task, error) {
	if windowDays < 0 {
		return nil, apperrors.InvalidArgumentf("window must not be negative, got %d", windowDays)
	}

	user, err := s.store.GetUser(mobile)
	if errors.Is(err, apperrors.ErrNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.TasksForUser(user, windowDays, today), nil
}

// TasksForUser is UpcomingTasks for an already loaded record.
//
// Tasks are enumerated reminders first, then each crop in stored order with
// its fertilizer events before its stage completions, and stably sorted by
// DaysUntil so ties keep that order.
func (s *Scheduler) TasksForUser(user models.UserRecord, windowDays int, today time.Time) []models.Task {
	today = utils.DateOf(today)
	tasks := make([]models.Task, 0)

	add := func(kind models.TaskKind, date time.Time, title, description string) {
		days, ok := utils.WithinWindow(today, date, windowDays)
		if !ok {
			return
		}
		tasks = append(tasks, models.Task{
			Kind:        kind,
			Date:        date,
			DaysUntil:   days,
			Title:       title,
			Description: description,
		})
	}

	for _, r := range user.Reminders {
		date, err := utils.ParseDate(r.Date)
		if err != nil {
			logger.Warn("Skipping reminder with invalid date", "mobile", user.Mobile, "id", r.ID, "date", r.Date)
			continue
		}
		add(models.TaskKindReminder, date, r.Title, r.Description)
	}

	for _, c := range user.Crops {
		planted, err := utils.ParseDate(c.PlantingDate)
		if err != nil {
			logger.Warn("Skipping crop with invalid planting date", "mobile", user.Mobile, "crop", c.Name, "date", c.PlantingDate)
			continue
		}
		cal := s.projector.Project(c.Name, planted)

		for _, f := range cal.FertilizerSchedule {
			add(models.TaskKindFertilizer, f.Date, fmt.Sprintf("%s - %s", c.Name, constants.FertilizerTaskSuffix), f.Fertilizer)
		}
		for _, st := range cal.Timeline {
			add(models.TaskKindStageCompletion, st.EndDate,
				fmt.Sprintf("%s - %s %s", c.Name, st.Stage, constants.StageTaskSuffix),
				strings.Join(st.Activities, ", "))
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DaysUntil < tasks[j].DaysUntil })

	logger.Debug("Aggregated upcoming tasks", "mobile", user.Mobile, "window", windowDays, "tasks", len(tasks))
	return tasks
}
