package models

import "time"

type TaskKind string

const (
	TaskKindReminder        TaskKind = "reminder"
	TaskKindFertilizer      TaskKind = "fertilizer"
	TaskKindStageCompletion TaskKind = "stage"
)

// Task is an entry of the merged "upcoming tasks" view.
type Task struct {
	Kind        TaskKind  `json:"type"`
	Date        time.Time `json:"date"`
	DaysUntil   int       `json:"days_until"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}
