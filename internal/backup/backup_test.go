package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/krishimitra/krishi/internal/constants"
)

func setupTestDB(t *testing.T) string {
	dbPath := filepath.Join(t.TempDir(), "krishi.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE users (mobile TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO users VALUES ('9876543210', 'Ravi'), ('9000000000', 'Asha')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func setupTestJSON(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(`{"9876543210": {"name": "Ravi"}}`), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}
	return path
}

// steppingClock returns a clock that advances one minute per call.
func steppingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func countUsers(t *testing.T, path string) int {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	return n
}

func TestCreateSQLite(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasSuffix(path, ".db") || filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup path = %s", path)
	}
	if n := countUsers(t, path); n != 2 {
		t.Errorf("backup has %d users, want 2", n)
	}
}

func TestCreateJSON(t *testing.T) {
	path := setupTestJSON(t)
	mgr := NewManager(path)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("backup path = %s, want .json suffix", backupPath)
	}
	data, err := os.ReadFile(backupPath)
	if err != nil || !strings.Contains(string(data), "Ravi") {
		t.Errorf("backup content = %q, err = %v", data, err)
	}
}

func TestCreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create() on missing store should fail")
	}
}

func TestCreateCorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}
	if _, err := NewManager(path).Create(); err == nil {
		t.Error("Create() on corrupt JSON should fail")
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("len(backups) = %d, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestUniqueFilenamesSameSecond(t *testing.T) {
	path := setupTestJSON(t)
	mgr := NewManager(path)
	fixed := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, _ := mgr.List()
	if len(backups) != 3 {
		t.Fatalf("len(backups) = %d, want 3", len(backups))
	}
	if !strings.HasSuffix(backups[0].Path, "-2.json") {
		t.Errorf("newest backup = %s, want counter 2", backups[0].Path)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	path := setupTestJSON(t)
	mgr := NewManager(path)
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "krishi-garbage.json", "krishi-20250101-080000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() = %+v, want none", backups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock()

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM users"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if n := countUsers(t, dbPath); n != 2 {
		t.Errorf("restored store has %d users, want 2", n)
	}

	backups, _ := mgr.List()
	if len(backups) != 2 {
		t.Errorf("len(backups) = %d, want 2 (original + pre-restore)", len(backups))
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	path := setupTestJSON(t)
	mgr := NewManager(path)

	bad := filepath.Join(t.TempDir(), "krishi-20250101-080000.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Restore(bad); err == nil {
		t.Error("Restore() with invalid backup should fail")
	}
	if err := mgr.Restore(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Restore() with missing backup should fail")
	}
}
