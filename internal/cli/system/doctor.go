package system

import (
	"fmt"
	"time"

	"github.com/krishimitra/krishi/internal/backup"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/keyring"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/postgres"
	"github.com/krishimitra/krishi/internal/utils"
	"github.com/krishimitra/krishi/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	advisory bool
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Crop catalog", run: checkCatalog, advisory: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, advisory: true},
	{name: "API keys", run: checkAPIKeys, advisory: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.advisory:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Store reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if _, err := ctx.Store.GetAllUsers(); err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		// JSON store doesn't have a schema
		return nil
	}
	current, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := m.LatestSchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("%d pending migration(s); run 'krishi migrate'", latest-current)
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	for _, def := range ctx.Catalog.Definitions() {
		if err := def.Validate(true); err != nil {
			cal := ctx.Projector.Project(def.Key, ctx.Today())
			if cal.HarvestMismatch() {
				last := cal.Timeline[len(cal.Timeline)-1]
				return fmt.Errorf("%w (last stage ends %d days after planting, harvest after %d)",
					err, utils.DaysBetween(cal.PlantingDate, last.EndDate), cal.TotalDurationDays)
			}
			return err
		}
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return err
	}
	v := validation.New(ctx.Catalog)
	result := v.ValidateUsers(users)

	if js, ok := ctx.Store.(*storage.JSONStore); ok {
		doc, err := js.Document()
		if err != nil {
			return err
		}
		result.Conflicts = append(result.Conflicts, v.ValidateDocumentKeys(doc).Conflicts...)
	}

	if result.HasConflicts() {
		fmt.Print(result.FormatReport())
	}
	if result.HasErrors() {
		return fmt.Errorf("stored records have errors")
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s; run 'krishi backup create'", mgr.BackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkAPIKeys(ctx *cli.Context) error {
	var missing []string
	if ctx.Config.WeatherAPIKey == "" {
		missing = append(missing, "openweather")
	}
	if ctx.Config.GeminiAPIKey == "" {
		missing = append(missing, "gemini")
	}
	if ctx.Config.NewsAPIKey == "" {
		missing = append(missing, "news")
	}
	if len(missing) > 0 {
		hint := "set them in .env or with 'krishi keyring set'"
		if !keyring.IsAvailable() {
			hint = "set them in .env (OS keyring unavailable)"
		}
		return fmt.Errorf("missing %v; offline fallbacks will be used (%s)", missing, hint)
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("cannot load local timezone %q: %w", now.Location(), err)
	}
	return nil
}
