package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

const (
	SheetUpcoming   = "Upcoming"
	SheetCalendar   = "Calendar"
	SheetFertilizer = "Fertilizer"
)

// Report is everything written to one workbook.
type Report struct {
	User        models.UserRecord
	Calendars   []models.CropCalendar
	Tasks       []models.Task
	WindowDays  int
	GeneratedAt time.Time
}

// Build lays the report out as a workbook with one sheet each for upcoming
// tasks, stage timelines and fertilizer applications.
func Build(r Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetUpcoming); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetCalendar, SheetFertilizer} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9EAD3"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, header: header}
	w.upcoming(r)
	w.calendar(r.Calendars)
	w.fertilizer(r.Calendars)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile builds the report and saves it to path.
func WriteFile(path string, r Report) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return fmt.Errorf("export path %q must end in .xlsx", path)
	}
	f, err := Build(r)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, n int, titles ...interface{}) {
	w.row(sheet, n, titles...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, n)
	last, _ := excelize.CoordinatesToCellName(len(titles), n)
	w.err = w.f.SetCellStyle(sheet, first, last, w.header)
}

func (w *sheetWriter) widths(sheet string, widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(sheet, col, col, width)
	}
}

func (w *sheetWriter) upcoming(r Report) {
	title := fmt.Sprintf("Upcoming tasks for %s (%s), next %d days from %s",
		r.User.Name, r.User.Mobile, r.WindowDays, utils.FormatDate(r.GeneratedAt))
	w.row(SheetUpcoming, 1, title)
	w.headerRow(SheetUpcoming, 3, "Date", "In days", "Type", "Title", "Description")
	for i, t := range r.Tasks {
		w.row(SheetUpcoming, 4+i, utils.FormatDate(t.Date), t.DaysUntil, string(t.Kind), t.Title, t.Description)
	}
	w.widths(SheetUpcoming, 12, 9, 12, 40, 50)
}

func (w *sheetWriter) calendar(cals []models.CropCalendar) {
	w.headerRow(SheetCalendar, 1, "Crop", "Planted", "Harvest", "Stage", "Start", "End", "Days", "Activities")
	n := 2
	for _, c := range cals {
		for _, s := range c.Timeline {
			w.row(SheetCalendar, n,
				c.Crop, utils.FormatDate(c.PlantingDate), utils.FormatDate(c.HarvestDate),
				s.Stage, utils.FormatDate(s.StartDate), utils.FormatDate(s.EndDate), s.DurationDays,
				strings.Join(s.Activities, ", "))
			n++
		}
	}
	w.widths(SheetCalendar, 16, 12, 12, 22, 12, 12, 6, 60)
}

func (w *sheetWriter) fertilizer(cals []models.CropCalendar) {
	w.headerRow(SheetFertilizer, 1, "Crop", "Date", "Fertilizer", "Stage")
	n := 2
	for _, c := range cals {
		for _, a := range c.FertilizerSchedule {
			w.row(SheetFertilizer, n, c.Crop, utils.FormatDate(a.Date), a.Fertilizer, a.Stage)
			n++
		}
	}
	w.widths(SheetFertilizer, 16, 12, 36, 22)
}
