package system

import (
	"fmt"

	"github.com/krishimitra/krishi/internal/cli"
)

// migrator is implemented by the SQL-backed stores.
type migrator interface {
	Migrate() (int, error)
	SchemaVersion() (int, error)
	LatestSchemaVersion() (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		fmt.Println("The JSON store has no schema. Nothing to migrate.")
		return nil
	}

	count, err := m.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
