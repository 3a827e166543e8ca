package backups

import (
	"path/filepath"
	"testing"

	"github.com/krishimitra/krishi/internal/backup"
	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/config"
	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/storage"
	"github.com/krishimitra/krishi/internal/storage/postgres"
)

func TestBackupCreateListRestore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "users.json"))
	ctx := cli.NewContext(store, catalog.Builtin(), config.Config{})
	ctx.Farm = farm.NewManager(store, farm.WithHashCost(4))

	if _, err := ctx.Farm.Register(farm.RegisterInput{Name: "Ravi", Mobile: "9000000001", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	list, err := backup.NewManager(store.GetConfigPath()).List()
	if err != nil || len(list) != 1 {
		t.Fatalf("backups = %v, %v", list, err)
	}

	if _, err := ctx.Farm.Register(farm.RegisterInput{Name: "Asha", Mobile: "9000000002", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	restore := &BackupRestoreCmd{BackupFile: filepath.Base(list[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	users, err := store.GetAllUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Mobile != "9000000001" {
		t.Errorf("users after restore = %+v", users)
	}

	if err := (&BackupRestoreCmd{BackupFile: "missing.json", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRejectsPostgres(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://farmer@localhost/krishi")}
	if err := (&BackupCreateCmd{}).Run(ctx); err != errPostgres {
		t.Errorf("error = %v, want errPostgres", err)
	}
}
