// Package csvio reads and writes the stop list CSV format.
//
// Uploaded files arrive with varying delimiters and legacy Russian column
// headers; parsing normalizes both before validating each row.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"route-planner-service/internal/domain"
)

// Canonical column order for exported files.
var canonicalColumns = []string{
	"address",
	"client_type",
	"lat",
	"lon",
	"work_time_start",
	"work_time_end",
	"lunch_start",
	"lunch_end",
}

// headerAliases maps cleaned header cells (lowercased, unquoted) to canonical
// column names. The Russian names are the legacy upload format.
var headerAliases = map[string]string{
	"address":                      "address",
	"адрес объекта":                "address",
	"client_type":                  "client_type",
	"tier":                         "client_type",
	"уровень клиента":              "client_type",
	"lat":                          "lat",
	"latitude":                     "lat",
	"географическая широта":        "lat",
	"lon":                          "lon",
	"longitude":                    "lon",
	"географическая долгота":       "lon",
	"work_time_start":              "work_time_start",
	"work_start":                   "work_time_start",
	"время начала рабочего дня":    "work_time_start",
	"work_time_end":                "work_time_end",
	"work_end":                     "work_time_end",
	"время окончания рабочего дня": "work_time_end",
	"lunch_start":                  "lunch_start",
	"время начала обеда":           "lunch_start",
	"lunch_end":                    "lunch_end",
	"время окончания обеда":        "lunch_end",
}

// ParseStops reads a stop list from CSV content. The delimiter is detected by
// trying comma, semicolon and tab in turn; the first that yields more than
// one column wins. Every row is validated on construction.
func ParseStops(r io.Reader) ([]domain.Stop, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse stops csv: read content: %w", err)
	}

	var records [][]string
	for _, delimiter := range []rune{',', ';', '\t'} {
		reader := csv.NewReader(bytes.NewReader(content))
		reader.Comma = delimiter
		reader.TrimLeadingSpace = true

		recs, err := reader.ReadAll()
		if err != nil || len(recs) == 0 || len(recs[0]) < 2 {
			continue
		}

		records = recs
		break
	}
	if records == nil {
		return nil, errors.New("parse stops csv: unable to detect delimiter")
	}

	columns, err := mapHeader(records[0])
	if err != nil {
		return nil, fmt.Errorf("parse stops csv: %w", err)
	}

	stops := make([]domain.Stop, 0, len(records)-1)
	for i, record := range records[1:] {
		field := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		stop, err := domain.ParseStop(
			i,
			field("address"),
			field("client_type"),
			field("lat"),
			field("lon"),
			field("work_time_start"),
			field("work_time_end"),
			field("lunch_start"),
			field("lunch_end"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse stops csv: row %d: %w", i+2, err)
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

// mapHeader resolves a raw header row to canonical column indexes, failing
// when any required column is absent.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(canonicalColumns))
	for idx, cell := range header {
		clean := strings.ToLower(strings.TrimSpace(cell))
		clean = strings.ReplaceAll(clean, `"`, "")
		clean = strings.ReplaceAll(clean, "'", "")

		if canonical, ok := headerAliases[clean]; ok {
			columns[canonical] = idx
		}
	}

	missing := make([]string, 0)
	for _, name := range canonicalColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

// WriteStops writes the stop list in the canonical CSV format.
func WriteStops(w io.Writer, stops []domain.Stop) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(canonicalColumns); err != nil {
		return fmt.Errorf("write stops csv: header: %w", err)
	}

	for _, stop := range stops {
		record := []string{
			stop.Address,
			string(stop.Tier),
			strconv.FormatFloat(stop.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(stop.Location.Lon, 'f', -1, 64),
			stop.WorkWindow.Start.String(),
			stop.WorkWindow.End.String(),
			stop.LunchWindow.Start.String(),
			stop.LunchWindow.End.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write stops csv: stop_id=%d: %w", stop.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write stops csv: flush: %w", err)
	}

	return nil
}
