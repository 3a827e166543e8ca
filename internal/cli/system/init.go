package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Store path or connection string to copy users from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized krishi storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying users from: %s\n", c.Source)
		n, err := c.copyUsers(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d users\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force is not supported for PostgreSQL; drop the %q schema manually", "krishi")
	}

	path := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing store at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyUsers(ctx *cli.Context) (int, error) {
	source, err := storage.Open(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	users, err := source.GetAllUsers()
	if err != nil {
		return 0, fmt.Errorf("failed to read users from source: %w", err)
	}
	if err := ctx.Store.SaveAllUsers(users); err != nil {
		return 0, fmt.Errorf("failed to save users: %w", err)
	}
	return len(users), nil
}
