package models

import "time"

// StageWindow is one growth stage projected onto absolute dates.
type StageWindow struct {
	Stage        string    `json:"stage"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	Activities   []string  `json:"activities"`
}

// FertilizerApplication is one fertilizer event projected onto an absolute date.
type FertilizerApplication struct {
	Date       time.Time `json:"date"`
	Fertilizer string    `json:"fertilizer"`
	Stage      string    `json:"stage"`
}

// CropCalendar is the derived timeline of a single planting. It is never persisted.
type CropCalendar struct {
	Crop               string                  `json:"crop"`
	PlantingDate       time.Time               `json:"planting_date"`
	HarvestDate        time.Time               `json:"harvest_date"`
	TotalDurationDays  int                     `json:"total_duration"`
	Timeline           []StageWindow           `json:"timeline"`
	FertilizerSchedule []FertilizerApplication `json:"fertilizer_schedule"`
}

// HarvestMismatch reports whether the last stage ends on a different day than
// the harvest date, which only happens with a leniently loaded catalog.
func (c CropCalendar) HarvestMismatch() bool {
	if len(c.Timeline) == 0 {
		return false
	}
	return !c.Timeline[len(c.Timeline)-1].EndDate.Equal(c.HarvestDate)
}

// CurrentStage returns the stage whose window contains day, if any.
func (c CropCalendar) CurrentStage(day time.Time) (StageWindow, bool) {
	for _, s := range c.Timeline {
		if !day.Before(s.StartDate) && day.Before(s.EndDate) {
			return s, true
		}
	}
	return StageWindow{}, false
}
