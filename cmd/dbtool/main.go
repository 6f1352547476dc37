package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"route-planner-service/internal/config"
	"route-planner-service/internal/csvio"
	"route-planner-service/internal/platform/db"
)

// dbtool initializes a Postgres stops schema and imports a stop list CSV.
// Used for deployments where the server's local SQLite store is replaced by
// a shared database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := initSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	csvPath := config.Get("SEED_PATH", "data/seeds/stops.csv")
	log.Printf("Importing stops from %q...", csvPath)
	n, err := importStops(ctx, conn, csvPath)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("Imported %d stops.", n)
}

func initSchema(ctx context.Context, conn *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id SERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		tier TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		work_start TEXT NOT NULL,
		work_end TEXT NOT NULL,
		lunch_start TEXT NOT NULL,
		lunch_end TEXT NOT NULL
	);
	`
	if _, err := conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init schema: create stops table: %w", err)
	}
	return nil
}

func importStops(ctx context.Context, conn *sql.DB, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("import stops: open %q: %w", csvPath, err)
	}
	defer f.Close()

	stops, err := csvio.ParseStops(f)
	if err != nil {
		return 0, fmt.Errorf("import stops: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops;`); err != nil {
		return 0, fmt.Errorf("import stops: clear table: %w", err)
	}

	query := `
	INSERT INTO stops (
		address,
		tier,
		lat,
		lon,
		work_start,
		work_end,
		lunch_start,
		lunch_end
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("import stops: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, stop := range stops {
		_, err := stmt.ExecContext(ctx,
			stop.Address,
			string(stop.Tier),
			stop.Location.Lat,
			stop.Location.Lon,
			stop.WorkWindow.Start.String(),
			stop.WorkWindow.End.String(),
			stop.LunchWindow.Start.String(),
			stop.LunchWindow.End.String(),
		)
		if err != nil {
			return 0, fmt.Errorf("import stops: insert %q: %w", stop.Address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import stops: commit tx: %w", err)
	}

	return len(stops), nil
}
