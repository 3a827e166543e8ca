package storage

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/storage/postgres"
	"github.com/krishimitra/krishi/internal/storage/sqlite"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// Kind names the backend selected for a store target.
type Kind string

const (
	KindJSON     Kind = "json"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// KindOf picks the backend from a target: a postgres:// URL selects
// PostgreSQL, a .db/.sqlite path selects SQLite, anything else is a JSON document.
func KindOf(target string) Kind {
	switch {
	case postgres.IsConnString(target):
		return KindPostgres
	case strings.HasSuffix(target, ".db"), strings.HasSuffix(target, ".sqlite"), strings.HasSuffix(target, ".sqlite3"):
		return KindSQLite
	default:
		return KindJSON
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", apperrors.Unavailable("resolve home directory", err)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return p, nil
}

// Open builds the provider for target without loading it. PostgreSQL targets
// are rejected when they embed a password.
func Open(target string) (Provider, error) {
	if strings.TrimSpace(target) == "" {
		return nil, apperrors.InvalidArgumentf("empty store target")
	}

	switch KindOf(target) {
	case KindPostgres:
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	case KindSQLite:
		path, err := ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	default:
		path, err := ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return NewJSONStore(path), nil
	}
}
