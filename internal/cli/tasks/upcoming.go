package tasks

import (
	"fmt"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/logger"
)

type UpcomingCmd struct {
	Days int `short:"d" help:"Days ahead to look." default:"${window}"`
}

func (c *UpcomingCmd) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative")
	}
	return nil
}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	if ctx.User == "" {
		return cli.ErrNoUser
	}

	tasks, err := ctx.Scheduler.UpcomingTasks(ctx.User, c.Days, ctx.Today())
	if err != nil {
		return err
	}
	logger.Debug("Upcoming tasks", "mobile", ctx.User, "window", c.Days, "count", len(tasks))

	if len(tasks) == 0 {
		fmt.Printf("Nothing due in the next %d days\n", c.Days)
		return nil
	}

	fmt.Printf("Upcoming tasks (next %d days):\n", c.Days)
	for _, t := range tasks {
		fmt.Printf("  %s\n", cli.FormatTask(t))
		if t.Description != "" {
			fmt.Printf("      %s\n", t.Description)
		}
	}
	return nil
}
