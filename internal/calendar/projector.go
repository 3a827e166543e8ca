package calendar

import (
	"time"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

// Projector expands catalog schedules into absolute calendar dates.
type Projector struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// Option configures a Projector.
type Option func(*Projector)

// WithClock sets the clock used to resolve an empty planting date.
func WithClock(now func() time.Time) Option {
	return func(p *Projector) { p.now = now }
}

func NewProjector(c *catalog.Catalog, opts ...Option) *Projector {
	p := &Projector{catalog: c, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog returns the catalog backing the projector.
func (p *Projector) Catalog() *catalog.Catalog {
	return p.catalog
}

// Project builds the calendar of one planting. The time of day of
// plantingDate is discarded. Unknown crops use the catalog default schedule
// but keep cropKey as the calendar's crop name.
func (p *Projector) Project(cropKey string, plantingDate time.Time) models.CropCalendar {
	def := p.catalog.Lookup(cropKey)
	planted := utils.DateOf(plantingDate)

	cal := models.CropCalendar{
		Crop:               cropKey,
		PlantingDate:       planted,
		HarvestDate:        utils.AddDays(planted, def.DurationDays),
		TotalDurationDays:  def.DurationDays,
		Timeline:           make([]models.StageWindow, 0, len(def.Stages)),
		FertilizerSchedule: make([]models.FertilizerApplication, 0, len(def.Fertilizer)),
	}

	cursor := planted
	for _, stage := range def.Stages {
		end := utils.AddDays(cursor, stage.Days)
		cal.Timeline = append(cal.Timeline, models.StageWindow{
			Stage:        stage.Name,
			StartDate:    cursor,
			EndDate:      end,
			DurationDays: stage.Days,
			Activities:   append([]string(nil), stage.Activities...),
		})
		cursor = end
	}

	for _, f := range def.Fertilizer {
		cal.FertilizerSchedule = append(cal.FertilizerSchedule, models.FertilizerApplication{
			Date:       utils.AddDays(planted, f.Day),
			Fertilizer: f.Fertilizer,
			Stage:      f.Stage,
		})
	}

	if cal.HarvestMismatch() {
		logger.Debug("Harvest date differs from last stage end",
			"crop", cropKey, "harvest", utils.FormatDate(cal.HarvestDate), "last_stage_end", utils.FormatDate(cursor))
	}
	return cal
}

// ProjectString parses plantingDate and projects it. An empty date means today.
func (p *Projector) ProjectString(cropKey, plantingDate string) (models.CropCalendar, error) {
	if plantingDate == "" {
		return p.Project(cropKey, utils.Today(p.now())), nil
	}
	d, err := utils.ParseDate(plantingDate)
	if err != nil {
		return models.CropCalendar{}, err
	}
	return p.Project(cropKey, d), nil
}
