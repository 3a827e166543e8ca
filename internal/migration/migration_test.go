package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/krishimitra/krishi/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range m {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func TestCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{"001_test.sql": "CREATE TABLE t (id INTEGER);"}), SQLite)

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if version, _ = runner.CurrentVersion(); version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestMigrationsSorted(t *testing.T) {
	runner := NewRunner(setupTestDB(t), files(map[string]string{
		"003_another.sql": "CREATE TABLE t2 (id INTEGER);",
		"001_init.sql":    "CREATE TABLE t1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE t1 ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), SQLite)

	ms, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	want := []string{"init", "update", "another"}
	if len(ms) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(ms))
	}
	for i, name := range want {
		if ms[i].Version != i+1 || ms[i].Name != name {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, ms[i].Version, ms[i].Name, i+1, name)
		}
	}
}

func TestApply(t *testing.T) {
	db := setupTestDB(t)
	fsys := files(map[string]string{
		"001_init.sql": "CREATE TABLE users (mobile TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, fsys, SQLite)

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	fsys["002_crops.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE crops (name TEXT);")}
	applied, err = runner.Apply()
	if err != nil {
		t.Fatalf("incremental Apply failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("incremental applied = %d, want 1", applied)
	}

	applied, err = runner.Apply()
	if err != nil || applied != 0 {
		t.Errorf("no-op Apply = (%d, %v), want (0, nil)", applied, err)
	}

	if v, _ := runner.CurrentVersion(); v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
}

func TestApplyRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_init.sql":   "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER; THIS IS NOT SQL",
	}), SQLite)

	applied, err := runner.Apply()
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := runner.CurrentVersion(); v != 1 {
		t.Errorf("version = %d, want 1 after rollback", v)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{"001_init.sql": "SELECT 1;"}), SQLite)
	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer schema error", err)
	}
	if _, err := runner.Apply(); err == nil {
		t.Error("Apply() on newer database should fail")
	}
}

func TestInvalidFilenames(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "missing separator", files: map[string]string{"001.sql": "SELECT 1;"}},
		{name: "non numeric", files: map[string]string{"abc_init.sql": "SELECT 1;"}},
		{name: "zero version", files: map[string]string{"000_init.sql": "SELECT 1;"}},
		{name: "duplicate", files: map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), files(tt.files), SQLite)
			if _, err := runner.Migrations(); err == nil {
				t.Error("Migrations() error = nil, want error")
			}
		})
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}
	db := setupTestDB(t)
	runner := NewRunner(db, sub, SQLite)
	if _, err := runner.Apply(); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for _, table := range []string{"users", "crops", "reminders"} {
		var n int
		if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&n); err != nil || n != 1 {
			t.Errorf("table %s missing (n=%d, err=%v)", table, n, err)
		}
	}
}
