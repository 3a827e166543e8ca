package users

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/farm"
)

type RegisterCmd struct {
	Mobile   string `arg:"" help:"Mobile number (account key)."`
	Name     string `short:"n" help:"Farmer name." required:""`
	Location string `short:"l" help:"Village or district."`
	Password string `help:"Password. Prompted for when omitted." env:"KRISHI_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	password, err := promptPassword(c.Password, true)
	if err != nil {
		return err
	}

	user, err := ctx.Farm.Register(farm.RegisterInput{
		Name:     c.Name,
		Location: c.Location,
		Mobile:   c.Mobile,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("✓ Registered %s (%s)\n", user.Name, user.Mobile)
	fmt.Printf("  Use --user %s or export KRISHI_USER=%s for later commands\n", user.Mobile, user.Mobile)
	return nil
}

type LoginCmd struct {
	Mobile   string `arg:"" help:"Mobile number."`
	Password string `help:"Password. Prompted for when omitted." env:"KRISHI_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password, err := promptPassword(c.Password, false)
	if err != nil {
		return err
	}

	user, err := ctx.Farm.Authenticate(c.Mobile, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("✓ Welcome back, %s!\n", user.Name)
	fmt.Printf("  %d crops, %d reminders\n", len(user.Crops), len(user.Reminders))
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	fmt.Printf("Name:       %s\n", user.Name)
	fmt.Printf("Mobile:     %s\n", user.Mobile)
	fmt.Printf("Location:   %s\n", user.Location)
	fmt.Printf("Registered: %s\n", user.RegisteredAt)
	fmt.Printf("Crops:      %d\n", len(user.Crops))
	fmt.Printf("Reminders:  %d\n", len(user.Reminders))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Farm.ListUsers()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users registered")
		return nil
	}

	fmt.Println("Users:")
	for _, u := range users {
		fmt.Printf("  %s  %s (%s) - %d crops\n", u.Mobile, u.Name, u.Location, len(u.Crops))
	}
	return nil
}

func promptPassword(given string, confirm bool) (string, error) {
	if given != "" {
		return given, nil
	}

	var password, again string
	fields := []huh.Field{
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password is required")
				}
				return nil
			}),
	}
	if confirm {
		fields = append(fields, huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&again))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", err
	}
	if confirm && password != again {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
