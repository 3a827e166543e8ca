package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/cli/advisory"
	"github.com/krishimitra/krishi/internal/cli/backups"
	"github.com/krishimitra/krishi/internal/cli/crops"
	"github.com/krishimitra/krishi/internal/cli/reminders"
	"github.com/krishimitra/krishi/internal/cli/system"
	"github.com/krishimitra/krishi/internal/cli/tasks"
	"github.com/krishimitra/krishi/internal/cli/users"
	"github.com/krishimitra/krishi/internal/config"
	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/keyring"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/postgres"
)

// keyringTarget makes --store read the PostgreSQL connection string from the OS keyring.
const keyringTarget = "keyring"

type App struct {
	Version        kong.VersionFlag
	Store          string   `help:"Store target: a JSON file, a .db SQLite file, a PostgreSQL URL without credentials, or 'keyring'." env:"KRISHI_STORE" default:"${store}"`
	Catalog        string   `help:"YAML crop catalog merged over the built-in crops." env:"KRISHI_CATALOG" type:"path"`
	LenientCatalog bool     `help:"Accept catalog entries whose stage days do not add up to the duration." env:"KRISHI_LENIENT_CATALOG"`
	User           string   `short:"u" help:"Mobile number of the farmer to act for." env:"KRISHI_USER"`
	EnvFile        []string `help:"Extra .env files to read API keys and settings from." type:"path"`
	Debug          bool     `help:"Log to stderr at debug level." env:"KRISHI_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize krishi storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the farm dashboard." default:"1"`

	Farmer struct {
		Register users.RegisterCmd `cmd:"" help:"Register a farmer."`
		Login    users.LoginCmd    `cmd:"" help:"Check a farmer's password."`
		Show     users.ShowCmd     `cmd:"" help:"Show the selected farmer." default:"1"`
		List     users.ListCmd     `cmd:"" help:"List registered farmers."`
	} `cmd:"" name:"user" help:"Manage farmers."`
	Crop struct {
		Add      crops.CropAddCmd      `cmd:"" help:"Record a planting."`
		List     crops.CropListCmd     `cmd:"" help:"List plantings and their stage." default:"1"`
		Calendar crops.CropCalendarCmd `cmd:"" help:"Show the crop calendar of a planting."`
		Export   crops.CropExportCmd   `cmd:"" help:"Export calendars and tasks to an Excel workbook."`
		Types    crops.CropTypesCmd    `cmd:"" help:"List crops in the catalog."`
	} `cmd:"" help:"Manage crops."`
	Reminder struct {
		Add  reminders.ReminderAddCmd  `cmd:"" help:"Add a reminder."`
		List reminders.ReminderListCmd `cmd:"" help:"List reminders." default:"1"`
	} `cmd:"" help:"Manage reminders."`
	Upcoming tasks.UpcomingCmd `cmd:"" help:"Show upcoming reminders, fertilizer applications and stage completions."`

	Weather   advisory.WeatherCmd   `cmd:"" help:"Current weather and farming advisories."`
	News      advisory.NewsCmd      `cmd:"" help:"Agriculture news."`
	Ask       advisory.AskCmd       `cmd:"" help:"Ask the farming assistant a question."`
	Diagnose  advisory.DiagnoseCmd  `cmd:"" help:"Diagnose a crop disease from a photo."`
	Prices    advisory.PricesCmd    `cmd:"" help:"Market prices by state."`
	Recommend advisory.RecommendCmd `cmd:"" help:"Recommend crops for a season and soil."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show which secrets are stored." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

var CLI App

// loadsStore lists the top-level commands that need a loaded store before
// Run. The others either load it themselves or never touch it.
var loadsStore = map[string]bool{
	"user":     true,
	"crop":     true,
	"reminder": true,
	"upcoming": true,
	"backup":   true,
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Krishi Mitra: crop calendars, farm tasks and advisories for smallholder farmers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"store":   constants.DefaultStorePath,
			"window":  strconv.Itoa(constants.DefaultWindowDays),
		},
	}
}

func main() {
	ctx := kong.Parse(&CLI, options()...)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(CLI.Store)}); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Failed to initialize logging: %v\n", err)
	}
	requestID := uuid.NewString()
	logger.SetRequestID(requestID)
	logger.Debug("Starting command", "command", ctx.Command(), "version", constants.Version)

	appCtx, err := newContext(&CLI, ctx.Command())
	if err != nil {
		apperrors.Fatal(err)
	}
	appCtx.RequestID = requestID

	apperrors.Fatal(ctx.Run(appCtx))
}

// newContext builds the catalog, config and store for command.
func newContext(app *App, command string) (*cli.Context, error) {
	var opts []catalog.Option
	if app.LenientCatalog {
		opts = append(opts, catalog.WithLenient())
	}
	cat, err := catalog.Load(app.Catalog, opts...)
	if err != nil {
		return nil, err
	}

	cfg := config.Load(app.EnvFile...)

	store, err := openStore(app.Store)
	if err != nil {
		return nil, err
	}

	if fields := strings.Fields(command); len(fields) > 0 && loadsStore[fields[0]] {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}

	appCtx := cli.NewContext(store, cat, cfg)
	appCtx.User = app.User
	return appCtx, nil
}

func openStore(target string) (storage.Provider, error) {
	if target != keyringTarget {
		return storage.Open(target)
	}
	conn, err := keyring.GetConnectionString()
	if err != nil {
		return nil, fmt.Errorf("no connection string in keyring: %w (run 'krishi keyring set connection-string')", err)
	}
	if !postgres.IsConnString(conn) && !strings.Contains(conn, "host=") {
		return nil, apperrors.InvalidArgumentf("keyring connection string is not a PostgreSQL connection string")
	}
	// Credentials are allowed here since the keyring already protects them.
	return postgres.New(conn), nil
}

// configDir places logs next to a file store, or in ~/.config/krishi otherwise.
func configDir(target string) string {
	if storage.KindOf(target) != storage.KindPostgres && target != keyringTarget {
		if path, err := storage.ExpandPath(target); err == nil {
			return filepath.Dir(path)
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Join(os.TempDir(), constants.AppName)
}
