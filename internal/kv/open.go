package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/database"
)

// Open builds the backend named by cfg.Storage.Driver. SQL backends are
// migrated up before use.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		db, err = database.NewSQLiteConnection(cfg.Database.SQLitePath)
		dialect = SQLite
	case config.DriverPostgres:
		db, err = database.NewConnection(&cfg.Database)
		dialect = Postgres
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Storage.Driver, err)
	}

	if _, err := database.Migrate(ctx, db, database.MigrateUp); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", cfg.Storage.Driver, err)
	}

	return NewSQLStore(db, dialect), nil
}
