package cleaner

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// CleanedHeader is the cleaned CSV column set, in output order.
var CleanedHeader = []string{
	"event_id", "date", "year", "location_name",
	"latitude", "longitude", "magnitude", "depth_km",
	"deaths", "injuries", "total_casualties", "tsunami_flag",
}

// AtomicCSVSink writes the cleaned CSV all-or-nothing: rows go to a temp file
// in the destination directory, which replaces the artifact via rename only
// after a successful flush and sync. A failed run leaves any previous
// artifact untouched and no partial file behind.
// It implements Sink.
type AtomicCSVSink struct {
	path string
}

// NewAtomicCSVSink creates a sink writing to path.
func NewAtomicCSVSink(path string) *AtomicCSVSink {
	return &AtomicCSVSink{path: path}
}

// Write persists the cleaned records, overwriting any previous artifact.
func (s *AtomicCSVSink) Write(quakes []domain.Quake) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".earthquakes_clean-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(CleanedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range quakes {
		if err = w.Write(marshalRow(&quakes[i])); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cleaned dataset: %w", err)
	}
	return nil
}

// marshalRow formats a Quake as cleaned CSV fields. Floats use the shortest
// exact representation so reruns are byte-identical.
func marshalRow(q *domain.Quake) []string {
	return []string{
		q.EventID,
		q.Date.Format("2006-01-02"),
		strconv.Itoa(q.Year),
		q.LocationName,
		formatFloat(q.Latitude),
		formatFloat(q.Longitude),
		formatFloat(q.Magnitude),
		formatFloat(q.DepthKm),
		strconv.Itoa(q.Deaths),
		strconv.Itoa(q.Injuries),
		strconv.Itoa(q.TotalCasualties),
		strconv.Itoa(q.TsunamiFlag),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
