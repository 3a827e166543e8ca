package reminders

import (
	"fmt"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/utils"
)

type ReminderAddCmd struct {
	Title       string `arg:"" help:"What to remember."`
	Date        string `short:"d" help:"Date (YYYY-MM-DD)." required:""`
	Description string `short:"m" help:"Optional details."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if ctx.User == "" {
		return cli.ErrNoUser
	}

	r, err := ctx.Farm.AddReminder(ctx.User, farm.ReminderInput{
		Title:       c.Title,
		Date:        c.Date,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}

	fmt.Printf("✓ Reminder #%d set for %s: %s\n", r.ID, r.Date, r.Title)
	return nil
}

type ReminderListCmd struct {
	All bool `help:"Include reminders dated before today."`
}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	today := ctx.Today()
	shown := 0
	for _, r := range user.Reminders {
		d, err := utils.ParseDate(r.Date)
		if err == nil && !c.All && d.Before(today) {
			continue
		}
		if shown == 0 {
			fmt.Println("Reminders:")
		}
		if err != nil {
			fmt.Printf("  #%d %s (unreadable date %q)\n", r.ID, r.Title, r.Date)
			shown++
			continue
		}
		fmt.Printf("  #%d %s  %s\n", r.ID, r.Date, r.Title)
		if r.Description != "" {
			fmt.Printf("      %s\n", r.Description)
		}
		shown++
	}
	if shown == 0 {
		fmt.Println("No reminders")
	}
	return nil
}
