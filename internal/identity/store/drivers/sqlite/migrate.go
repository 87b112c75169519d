package sqlite

import (
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite/migrations"

	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
)

// ApplyMigrations brings the schema up to date from the embedded SQL files.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlitemigrate.WithInstance(s.db, &sqlitemigrate.Config{})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "sqlite", driver)
}
