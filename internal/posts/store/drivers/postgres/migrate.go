package postgres

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/posts/internal/posts/store/drivers/postgres/migrations"
	"github.com/golang-migrate/migrate/v4"
	// Register the pgx/v5 database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

// migrateURL rewrites postgres:// and postgresql:// to the pgx5:// scheme
// golang-migrate's pgx/v5 driver registers under.
func migrateURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return databaseURL
}

// ApplyMigrations applies any pending migrations embedded in the binary.
func (s *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return oops.Code("MIGRATION_SOURCE_FAILED").Wrap(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(s.url))
	if err != nil {
		_ = src.Close()
		return oops.Code("MIGRATION_INIT_FAILED").Wrap(err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("MIGRATION_UP_FAILED").Wrap(err)
	}
	return nil
}
