package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/migration"
	"github.com/krishimitra/krishi/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return apperrors.Unavailable("create config directory", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.runner().Apply(); err != nil {
		return apperrors.Unavailable("run migrations", err)
	}
	return nil
}

// Load opens the database. A missing file is created and migrated so that a
// fresh install reads as an empty store.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.Init()
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.runner().ValidateVersion(); err != nil {
		return apperrors.Unavailable("validate schema", err)
	}
	return nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return apperrors.Unavailable("open database", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return apperrors.Unavailable("enable foreign keys", err)
	}
	s.db = db
	return nil
}

func (s *Store) runner() *migration.Runner {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		panic(fmt.Sprintf("embedded sqlite migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, sub, migration.SQLite)
}

// Migrate applies pending migrations and returns how many ran.
func (s *Store) Migrate() (int, error) {
	if err := s.open(); err != nil {
		return 0, err
	}
	return s.runner().Apply()
}

// LatestSchemaVersion returns the newest version shipped with the binary.
func (s *Store) LatestSchemaVersion() (int, error) {
	return s.runner().LatestVersion()
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion() (int, error) {
	if s.db == nil {
		return 0, apperrors.Unavailable("schema version", fmt.Errorf("database not loaded"))
	}
	return s.runner().CurrentVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
