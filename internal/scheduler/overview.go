package scheduler

import (
	"time"

	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

// CropStatus is where one planting stands on a given day.
type CropStatus struct {
	Holding       models.CropHolding
	Calendar      models.CropCalendar
	CurrentStage  string
	DaysSince     int
	DaysToHarvest int
	Harvested     bool
}

// Overview projects every crop of user and reports its stage on today.
// Crops with an unparseable planting date are left out.
func (s *Scheduler) Overview(user models.UserRecord, today time.Time) []CropStatus {
	today = utils.DateOf(today)
	out := make([]CropStatus, 0, len(user.Crops))
	for _, c := range user.Crops {
		planted, err := utils.ParseDate(c.PlantingDate)
		if err != nil {
			continue
		}
		cal := s.projector.Project(c.Name, planted)
		st := CropStatus{
			Holding:       c,
			Calendar:      cal,
			DaysSince:     utils.DaysBetween(planted, today),
			DaysToHarvest: utils.DaysBetween(today, cal.HarvestDate),
		}
		switch stage, ok := cal.CurrentStage(today); {
		case ok:
			st.CurrentStage = stage.Stage
		case today.Before(planted):
			st.CurrentStage = "Not planted yet"
		default:
			st.CurrentStage = "Harvest due"
			st.Harvested = !today.Before(cal.HarvestDate)
		}
		out = append(out, st)
	}
	return out
}
