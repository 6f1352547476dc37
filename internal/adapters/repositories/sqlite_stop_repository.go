package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
)

// SQLite-backed implementation of the StopRepository port.
type SqliteStopRepository struct{ DB *sql.DB }

func NewSqliteStopRepository(db *sql.DB) *SqliteStopRepository {
	return &SqliteStopRepository{DB: db}
}

// Return all stops in stable id order.
func (s *SqliteStopRepository) ListStops(ctx context.Context) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite stop repository: DB is nil")
	}

	query := `
	SELECT
		stop_id,
		address,
		tier,
		lat,
		lon,
		work_start,
		work_end,
		lunch_start,
		lunch_end
	FROM stops
	ORDER BY stop_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 64)
	for rows.Next() {
		var (
			id                   int
			address, tier        string
			lat, lon             float64
			workStart, workEnd   string
			lunchStart, lunchEnd string
		)
		if err := rows.Scan(&id, &address, &tier, &lat, &lon, &workStart, &workEnd, &lunchStart, &lunchEnd); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}

		work, err := domain.ParseTimeWindow(workStart, workEnd)
		if err != nil {
			return nil, fmt.Errorf("list stops: stop_id=%d work window: %w", id, err)
		}

		lunch, err := domain.ParseTimeWindow(lunchStart, lunchEnd)
		if err != nil {
			return nil, fmt.Errorf("list stops: stop_id=%d lunch window: %w", id, err)
		}

		stops = append(stops, domain.Stop{
			ID:          id,
			Address:     address,
			Location:    domain.Coordinates{Lat: lat, Lon: lon},
			Tier:        domain.ParseTier(tier),
			WorkWindow:  work,
			LunchWindow: lunch,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return stops, nil
}

// Persist a single new stop, returning its assigned id.
func (s *SqliteStopRepository) AddStop(ctx context.Context, stop domain.Stop) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, insertStopQuery,
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
		return 0, fmt.Errorf("add stop: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add stop: last insert id: %w", err)
	}

	return int(id), nil
}

// Remove a single stop by id.
func (s *SqliteStopRepository) DeleteStop(ctx context.Context, id int) error {
	if s.DB == nil {
		return errors.New("sqlite stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM stops WHERE stop_id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete stop: stop_id=%d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stop: rows affected: %w", err)
	}
	if affected == 0 {
		return ports.ErrStopNotFound
	}

	return nil
}

// Remove every stop, returning the number removed.
func (s *SqliteStopRepository) DeleteAllStops(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite stop repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM stops;`)
	if err != nil {
		return 0, fmt.Errorf("delete all stops: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all stops: rows affected: %w", err)
	}

	return int(affected), nil
}

// Atomically replace the entire stop list. Either every stop from the new
// list is stored, or the previous list is kept untouched.
func (s *SqliteStopRepository) ReplaceStops(ctx context.Context, stops []domain.Stop) error {
	if s.DB == nil {
		return errors.New("sqlite stop repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stops: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops;`); err != nil {
		return fmt.Errorf("replace stops: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStopQuery)
	if err != nil {
		return fmt.Errorf("replace stops: prepare insert: %w", err)
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
			return fmt.Errorf("replace stops: insert %q: %w", stop.Address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stops: commit tx: %w", err)
	}

	return nil
}

const insertStopQuery = `
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
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`
