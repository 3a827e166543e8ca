package crops

import (
	"fmt"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/export"
	"github.com/krishimitra/krishi/internal/models"
)

type CropExportCmd struct {
	Output string `arg:"" help:"Destination .xlsx file." type:"path"`
	Window int    `short:"w" help:"Days ahead to include in the upcoming sheet." default:"30"`
}

func (c *CropExportCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if c.Window < 0 {
		c.Window = constants.DefaultWindowDays
	}

	today := ctx.Today()
	cals := make([]models.CropCalendar, 0, len(user.Crops))
	for _, st := range ctx.Scheduler.Overview(user, today) {
		cals = append(cals, st.Calendar)
	}

	report := export.Report{
		User:        user,
		Calendars:   cals,
		Tasks:       ctx.Scheduler.TasksForUser(user, c.Window, today),
		WindowDays:  c.Window,
		GeneratedAt: today,
	}
	if err := export.WriteFile(c.Output, report); err != nil {
		return err
	}

	fmt.Printf("✓ Exported %d crops and %d upcoming tasks to %s\n", len(cals), len(report.Tasks), c.Output)
	return nil
}
