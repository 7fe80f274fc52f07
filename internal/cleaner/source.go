package cleaner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// headerRenames maps raw NOAA column headers to canonical field names.
// The tsunami column is handled separately because its name varies between
// exports ("Tsunami", "Flag Tsunami", ...).
var headerRenames = map[string]string{
	"Id":              "event_id",
	"Year":            "year",
	"Month":           "month",
	"Date":            "day",
	"Name":            "location_name",
	"Latitude":        "latitude",
	"Longitude":       "longitude",
	"Focal Depth (km)": "depth_km",
	"Magnitude":       "magnitude",
	"Deaths":          "deaths",
	"Injuries":        "injuries",
}

// requiredColumns must be present after renaming or the run fails.
var requiredColumns = []string{
	"year", "month", "day", "latitude", "longitude",
	"depth_km", "magnitude", "deaths", "injuries",
}

// CSVSource reads raw NOAA rows from a CSV file.
// It implements Source.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for the raw dataset at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Records reads and header-normalizes every row of the raw CSV.
// The file must exist and carry all required columns.
func (s *CSVSource) Records() ([]domain.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("raw dataset not found: %s", s.path)
		}
		return nil, fmt.Errorf("open raw dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // raw exports have ragged rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read raw dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("raw dataset is empty: %s", s.path)
	}

	colIdx, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		get := func(col string) string {
			idx, ok := colIdx[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		records = append(records, domain.RawRecord{
			EventID:      get("event_id"),
			Year:         get("year"),
			Month:        get("month"),
			Day:          get("day"),
			LocationName: get("location_name"),
			Latitude:     get("latitude"),
			Longitude:    get("longitude"),
			Magnitude:    get("magnitude"),
			DepthKm:      get("depth_km"),
			Deaths:       get("deaths"),
			Injuries:     get("injuries"),
			TsunamiFlag:  get("tsunami_flag"),
			Line:         i + 2,
		})
	}

	return records, nil
}

// mapHeader trims and renames header cells, autodetects the tsunami column,
// and verifies all required columns are present.
func mapHeader(header []string) (map[string]int, error) {
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if strings.Contains(strings.ToLower(h), "tsunami") {
			if _, seen := colIdx["tsunami_flag"]; !seen {
				colIdx["tsunami_flag"] = i
			}
			continue
		}
		if canonical, ok := headerRenames[h]; ok {
			colIdx[canonical] = i
			continue
		}
		colIdx[h] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		available := make([]string, 0, len(header))
		for _, h := range header {
			available = append(available, strings.TrimSpace(h))
		}
		return nil, fmt.Errorf("missing required columns %v (available: %v)", missing, available)
	}

	return colIdx, nil
}
