package cleaner

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// ParseCleaned parses a cleaned CSV artifact back into records. The header
// must match CleanedHeader exactly; a zero-byte file parses as an empty
// dataset. The artifact is produced by this package, so any malformed row is
// an error rather than a drop.
func ParseCleaned(data []byte) ([]domain.Quake, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cleaned dataset: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Quake{}, nil
	}

	if len(rows[0]) != len(CleanedHeader) {
		return nil, fmt.Errorf("cleaned dataset header mismatch: got %v", rows[0])
	}
	for i, col := range CleanedHeader {
		if rows[0][i] != col {
			return nil, fmt.Errorf("cleaned dataset header mismatch: column %d is %q, want %q", i, rows[0][i], col)
		}
	}

	quakes := make([]domain.Quake, 0, len(rows)-1)
	for i, row := range rows[1:] {
		q, err := parseCleanedRow(row)
		if err != nil {
			return nil, fmt.Errorf("cleaned dataset line %d: %w", i+2, err)
		}
		quakes = append(quakes, q)
	}
	return quakes, nil
}

func parseCleanedRow(row []string) (domain.Quake, error) {
	if len(row) != len(CleanedHeader) {
		return domain.Quake{}, fmt.Errorf("expected %d fields, got %d", len(CleanedHeader), len(row))
	}

	date, err := time.Parse("2006-01-02", row[1])
	if err != nil {
		return domain.Quake{}, fmt.Errorf("parse date: %w", err)
	}

	year, err := strconv.Atoi(row[2])
	if err != nil {
		return domain.Quake{}, fmt.Errorf("parse year: %w", err)
	}

	floats := make([]float64, 4)
	for i, idx := range []int{4, 5, 6, 7} { // latitude, longitude, magnitude, depth_km
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return domain.Quake{}, fmt.Errorf("parse %s: %w", CleanedHeader[idx], err)
		}
		floats[i] = v
	}

	ints := make([]int, 4)
	for i, idx := range []int{8, 9, 10, 11} { // deaths, injuries, total_casualties, tsunami_flag
		v, err := strconv.Atoi(row[idx])
		if err != nil {
			return domain.Quake{}, fmt.Errorf("parse %s: %w", CleanedHeader[idx], err)
		}
		ints[i] = v
	}

	return domain.Quake{
		EventID:         row[0],
		Date:            date,
		Year:            year,
		LocationName:    row[3],
		Latitude:        floats[0],
		Longitude:       floats[1],
		Magnitude:       floats[2],
		DepthKm:         floats[3],
		Deaths:          ints[0],
		Injuries:        ints[1],
		TotalCasualties: ints[2],
		TsunamiFlag:     ints[3],
	}, nil
}
