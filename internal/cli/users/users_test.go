package users

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/krishimitra/krishi/internal/catalog"
	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/config"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/farm"
	"github.com/krishimitra/krishi/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "users.json"))
	ctx := cli.NewContext(store, catalog.Builtin(), config.Config{})
	ctx.Farm = farm.NewManager(store, farm.WithHashCost(4))
	return ctx
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := setupTestContext(t)

	reg := &RegisterCmd{Mobile: "9000000001", Name: "Ravi", Location: "Palakkad", Password: "secret"}
	if err := reg.Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := reg.Run(ctx); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Errorf("second register error = %v, want ErrAlreadyExists", err)
	}

	if err := (&LoginCmd{Mobile: "9000000001", Password: "secret"}).Run(ctx); err != nil {
		t.Errorf("login failed: %v", err)
	}
	if err := (&LoginCmd{Mobile: "9000000001", Password: "wrong"}).Run(ctx); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("bad password error = %v", err)
	}
	if err := (&LoginCmd{Mobile: "9000000002", Password: "secret"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestShowAndList(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on empty store failed: %v", err)
	}
	if err := (&ShowCmd{}).Run(ctx); !errors.Is(err, cli.ErrNoUser) {
		t.Errorf("show without user error = %v", err)
	}

	if err := (&RegisterCmd{Mobile: "9000000001", Name: "Ravi", Password: "pw"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.User = "9000000001"
	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
