package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"route-planner-service/internal/csvio"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id INTEGER PRIMARY KEY AUTOINCREMENT,
		address TEXT NOT NULL,
		tier TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		work_start TEXT NOT NULL,
		work_end TEXT NOT NULL,
		lunch_start TEXT NOT NULL,
		lunch_end TEXT NOT NULL
	);
	`

	if _, err := db.Exec(createStopsQuery); err != nil {
		return fmt.Errorf("init schema: create stops table: %w", err)
	}

	return nil
}

// SeedFromCSV populates an empty stops table from a CSV file. A missing seed
// file is not an error; a non-empty table is left untouched.
func SeedFromCSV(ctx context.Context, db *sql.DB, csvPath string) error {
	if db == nil {
		return errors.New("seed stops: DB is nil")
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stops;`).Scan(&count); err != nil {
		return fmt.Errorf("seed stops: count rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	f, err := os.Open(csvPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file %q not found, starting with an empty stop list", csvPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed stops: open %q: %w", csvPath, err)
	}
	defer f.Close()

	stops, err := csvio.ParseStops(f)
	if err != nil {
		return fmt.Errorf("seed stops: parse %q: %w", csvPath, err)
	}

	repo := NewSqliteStopRepository(db)
	if err := repo.ReplaceStops(ctx, stops); err != nil {
		return fmt.Errorf("seed stops: %w", err)
	}

	log.Printf("seeded %d stops from %q", len(stops), csvPath)
	return nil
}
