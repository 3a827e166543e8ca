package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/config"
	"github.com/krishimitra/krishi/internal/constants"
	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/keyring"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/sqlite"
	"github.com/krishimitra/krishi/internal/utils"
)

func setupContext(t *testing.T, store storage.Provider) *cli.Context {
	t.Helper()
	ctx := cli.NewContext(store, catalog.Builtin(), config.Config{})
	ctx.Farm = farm.NewManager(store, farm.WithHashCost(4))
	t.Cleanup(func() { _ = store.Close() })
	return ctx
}

func TestInitCmd(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"json", "users.json"},
		{"sqlite", "krishi.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			store, err := storage.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			ctx := setupContext(t, store)

			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init failed: %v", err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("store not created: %v", err)
			}
			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Errorf("second init failed: %v", err)
			}
		})
	}
}

func TestInitCmdForceAndSource(t *testing.T) {
	dir := t.TempDir()

	src := storage.NewJSONStore(filepath.Join(dir, "old.json"))
	srcFarm := farm.NewManager(src, farm.WithHashCost(4))
	if _, err := srcFarm.Register(farm.RegisterInput{Name: "Ravi", Mobile: "9000000001", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if _, err := srcFarm.AddCrop("9000000001", "Pepper", utils.MustParseDate("2025-01-01"), 1); err != nil {
		t.Fatal(err)
	}

	dst := sqlite.NewStore(filepath.Join(dir, "krishi.db"))
	ctx := setupContext(t, dst)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := dst.SaveUser(models.UserRecord{Mobile: "9000000009", Name: "Stale"}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true, Source: src.GetConfigPath()}).Run(ctx); err != nil {
		t.Fatalf("init --force --source failed: %v", err)
	}

	users, err := dst.GetAllUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Mobile != "9000000001" || len(users[0].Crops) != 1 {
		t.Errorf("users after copy = %+v", users)
	}

	if err := (&InitCmd{Force: true, Source: dst.GetConfigPath()}).Run(ctx); err == nil {
		t.Error("expected error when source equals destination")
	}
}

func TestInitCmdCopiesSQLiteIntoJSON(t *testing.T) {
	dir := t.TempDir()

	src := sqlite.NewStore(filepath.Join(dir, "old.db"))
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveUser(models.UserRecord{Mobile: "9000000003", Name: "Meena", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}

	dst := storage.NewJSONStore(filepath.Join(dir, "users.json"))
	ctx := setupContext(t, dst)
	if err := (&InitCmd{Source: src.GetConfigPath()}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}

	data, err := os.ReadFile(dst.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("copied document contains null lists: %s", data)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx := setupContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "krishi.db")))
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate failed: %v", err)
	}
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("second migrate failed: %v", err)
	}

	jsonCtx := setupContext(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "users.json")))
	if err := (&MigrateCmd{}).Run(jsonCtx); err != nil {
		t.Errorf("migrate on json store failed: %v", err)
	}
}

func TestDoctorCmd(t *testing.T) {
	gokeyring.MockInit()

	ctx := setupContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "krishi.db")))
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on healthy store: %v", err)
	}
}

func TestDoctorCmdDetectsBadRecords(t *testing.T) {
	gokeyring.MockInit()

	path := filepath.Join(t.TempDir(), "users.json")
	doc := `{"9000000001": {"mobile": "9000000002", "name": "Ravi", "password": "x",
		"crops": [{"name": "Rice (Paddy)", "planting_date": "someday", "area_acres": 1}], "reminders": []}}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	ctx := setupContext(t, storage.NewJSONStore(path))
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on invalid records")
	}
}

func TestDoctorCmdCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	ctx := setupContext(t, storage.NewJSONStore(path))
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on corrupt store")
	}
}

func TestKeyringCmds(t *testing.T) {
	gokeyring.MockInit()
	ctx := &cli.Context{}

	tests := []struct {
		name      string
		secret    string
		value     string
		wantError bool
	}{
		{"postgres URL", "connection-string", "postgres://farmer@localhost:5432/krishi?sslmode=disable", false},
		{"DSN", "connection-string", "host=localhost port=5432 dbname=krishi user=farmer", false},
		{"URL with password (warning)", "connection-string", "postgres://farmer:pw@localhost/krishi", false},
		{"not a connection string", "connection-string", "not-a-valid-connection-string", true},
		{"api key", "gemini", "g-123", false},
		{"unknown secret", "twitter", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&KeyringSetCmd{Name: tt.secret, Value: tt.value}).Run(ctx)
			if (err != nil) != tt.wantError {
				t.Fatalf("KeyringSetCmd.Run() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			got, err := keyring.Get(keyring.Secrets[tt.secret])
			if err != nil || got != tt.value {
				t.Errorf("stored value = %q, %v", got, err)
			}
		})
	}

	if err := (&KeyringStatusCmd{}).Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
	if err := (&KeyringDeleteCmd{Name: "gemini"}).Run(ctx); err != nil {
		t.Errorf("delete failed: %v", err)
	}
	if err := (&KeyringDeleteCmd{Name: "gemini"}).Run(ctx); err == nil {
		t.Error("second delete should fail")
	}
	if _, err := keyring.Get(constants.KeyringGeminiUser); err != keyring.ErrNotFound {
		t.Errorf("after delete Get() error = %v", err)
	}
}
