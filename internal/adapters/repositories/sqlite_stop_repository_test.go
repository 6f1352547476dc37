package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

func newTestRepo(t *testing.T) *SqliteStopRepository {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "stops.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}
	return NewSqliteStopRepository(db)
}

func sampleStop(t *testing.T, address, tier string) domain.Stop {
	t.Helper()
	stop, err := domain.ParseStop(0, address, tier, "47.22", "39.71", "09:00", "18:00", "13:00", "14:00")
	if err != nil {
		t.Fatalf("ParseStop(%q): %v", address, err)
	}
	return stop
}

func TestSqliteAddAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.AddStop(ctx, sampleStop(t, "Lenina 1", "VIP"))
	if err != nil {
		t.Fatalf("AddStop() error = %v", err)
	}
	id2, err := repo.AddStop(ctx, sampleStop(t, "Pushkina 10", "Standard"))
	if err != nil {
		t.Fatalf("AddStop() error = %v", err)
	}
	if id1 != 1 || id2 != 2 {
		t.Errorf("assigned ids = %d, %d, want 1, 2", id1, id2)
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("ListStops() error = %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(stops))
	}

	first := stops[0]
	if first.ID != 1 || first.Address != "Lenina 1" || first.Tier != domain.TierVIP {
		t.Errorf("first stop = %+v", first)
	}
	if got := first.WorkWindow.String(); got != "09:00-18:00" {
		t.Errorf("work window = %q", got)
	}
	if first.Location.Lat != 47.22 || first.Location.Lon != 39.71 {
		t.Errorf("location = %+v", first.Location)
	}
}

func TestSqliteDeleteStop(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddStop(ctx, sampleStop(t, "Lenina 1", "Standard"))
	if err != nil {
		t.Fatalf("AddStop() error = %v", err)
	}

	if err := repo.DeleteStop(ctx, id); err != nil {
		t.Fatalf("DeleteStop() error = %v", err)
	}
	if err := repo.DeleteStop(ctx, id); !errors.Is(err, ports.ErrStopNotFound) {
		t.Errorf("second delete error = %v, want ErrStopNotFound", err)
	}
}

func TestSqliteDeleteAllStops(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, address := range []string{"A", "B", "C"} {
		if _, err := repo.AddStop(ctx, sampleStop(t, address, "Standard")); err != nil {
			t.Fatalf("AddStop(%q) error = %v", address, err)
		}
	}

	deleted, err := repo.DeleteAllStops(ctx)
	if err != nil {
		t.Fatalf("DeleteAllStops() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("ListStops() error = %v", err)
	}
	if len(stops) != 0 {
		t.Errorf("got %d stops after delete all, want 0", len(stops))
	}
}

func TestSqliteReplaceStops(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddStop(ctx, sampleStop(t, "Old place", "Standard")); err != nil {
		t.Fatalf("AddStop() error = %v", err)
	}

	replacement := []domain.Stop{
		sampleStop(t, "New place 1", "VIP"),
		sampleStop(t, "New place 2", "Standard"),
	}
	if err := repo.ReplaceStops(ctx, replacement); err != nil {
		t.Fatalf("ReplaceStops() error = %v", err)
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("ListStops() error = %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(stops))
	}
	if stops[0].Address != "New place 1" || stops[1].Address != "New place 2" {
		t.Errorf("stops = %+v", stops)
	}
}

func TestSeedFromCSV(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedPath := filepath.Join(t.TempDir(), "seed.csv")
	content := "address,client_type,lat,lon,work_time_start,work_time_end,lunch_start,lunch_end\n" +
		"Seeded 1,VIP,47.20,39.70,09:00,18:00,13:00,14:00\n"
	if err := os.WriteFile(seedPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	if err := SeedFromCSV(ctx, repo.DB, seedPath); err != nil {
		t.Fatalf("SeedFromCSV() error = %v", err)
	}

	stops, err := repo.ListStops(ctx)
	if err != nil {
		t.Fatalf("ListStops() error = %v", err)
	}
	if len(stops) != 1 || stops[0].Address != "Seeded 1" {
		t.Fatalf("seeded stops = %+v", stops)
	}

	// Re-seeding a non-empty table is a no-op.
	if err := SeedFromCSV(ctx, repo.DB, seedPath); err != nil {
		t.Fatalf("SeedFromCSV() second run error = %v", err)
	}
	stops, _ = repo.ListStops(ctx)
	if len(stops) != 1 {
		t.Errorf("got %d stops after reseed, want 1", len(stops))
	}
}

func TestSeedFromCSVMissingFile(t *testing.T) {
	repo := newTestRepo(t)

	if err := SeedFromCSV(context.Background(), repo.DB, filepath.Join(t.TempDir(), "absent.csv")); err != nil {
		t.Errorf("missing seed file should not be an error, got %v", err)
	}
}
