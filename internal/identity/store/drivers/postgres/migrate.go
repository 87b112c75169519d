package postgres

import (
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/postgres/migrations"

	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
)

// ApplyMigrations runs the embedded migrations through a database/sql view
// of the pool, since golang-migrate does not speak pgxpool directly.
func (s *Store) ApplyMigrations() error {
	driver, err := pgxmigrate.WithInstance(s.database(), &pgxmigrate.Config{})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "pgx5", driver)
}
