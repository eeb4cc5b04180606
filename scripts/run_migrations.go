package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_migrations.go [up|down]")
	}

	direction := os.Args[1]
	if direction != database.MigrateUp && direction != database.MigrateDown {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	var db *sql.DB
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err = database.NewConnection(&cfg.Database)
	case config.DriverSQLite:
		db, err = database.NewSQLiteConnection(cfg.Database.SQLitePath)
	default:
		log.Fatalf("Storage driver %q has no schema to migrate", cfg.Storage.Driver)
	}
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	applied, err := database.Migrate(context.Background(), db, direction)
	if err != nil {
		log.Fatalf("Migrate %s: %v", direction, err)
	}

	for _, filename := range applied {
		log.Printf("Ran migration: %s", filename)
	}
	log.Printf("Successfully ran %d migration(s) %s", len(applied), direction)
}
