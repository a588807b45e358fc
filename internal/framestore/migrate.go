package framestore

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationsTable tracks the applied schema version.
const migrationsTable = "velocity_schema_migrations"

// MigrationResult describes what a migration run did.
type MigrationResult struct {
	FromVersion uint
	ToVersion   uint
	NoChange    bool
}

// MigrateStore runs database migrations for the frame archive.
//   - If targetVersion < 0, it migrates to the latest version.
//   - If targetVersion == 0, it rolls back all migrations.
//   - If targetVersion > 0, it migrates to the specified version.
func MigrateStore(backend schema.DatabaseBackend, connStr string, targetVersion int) (MigrationResult, error) {
	var res MigrationResult
	if backend == schema.NoneBackend {
		return res, fmt.Errorf("migrations are not supported for the none backend")
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return res, err
	}
	defer func() { _ = db.Close() }()

	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db.DB, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{MigrationsTable: migrationsTable})
	}
	if err != nil {
		return res, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations/"+string(backend))
	if err != nil {
		return res, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	sourceDriver, err := iofs.New(sub, ".")
	if err != nil {
		return res, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "velocity", driver)
	if err != nil {
		return res, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return res, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", current)
	}
	res.FromVersion = current

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if errors.Is(err, migrate.ErrNoChange) {
		res.NoChange = true
		res.ToVersion = current
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
	}

	after, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("failed to read migrated version: %w", err)
	}
	res.ToVersion = after
	return res, nil
}

// String renders the result for console output.
func (r MigrationResult) String() string {
	if r.NoChange {
		return fmt.Sprintf("No migration needed. Database is already at version %d", r.ToVersion)
	}
	return fmt.Sprintf("Successfully migrated from version %d to version %d", r.FromVersion, r.ToVersion)
}
