package dashboard

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// TableLimit is the row cap for the table view.
const TableLimit = 25

// Row is a cleaned record plus its derived severity, as served in table and
// export views.
type Row struct {
	domain.Quake
	Severity string `json:"severity"`
}

// PeakEvent identifies the single event with the highest value of the
// selected metric.
type PeakEvent struct {
	EventID      string    `json:"event_id"`
	Date         time.Time `json:"date"`
	LocationName string    `json:"location_name"`
	Magnitude    float64   `json:"magnitude"`
	Value        int       `json:"value"`
}

// Summary holds the headline KPIs for a filtered view.
type Summary struct {
	Events          int        `json:"events"`
	TotalCasualties int        `json:"total_casualties"`
	Deaths          int        `json:"deaths"`
	Injuries        int        `json:"injuries"`
	Peak            *PeakEvent `json:"peak,omitempty"`
}

// YearValue is one point of the per-year trend.
type YearValue struct {
	Year  int `json:"year"`
	Value int `json:"value"`
}

// Mix is the deaths versus injuries split.
type Mix struct {
	Deaths   int `json:"deaths"`
	Injuries int `json:"injuries"`
}

// SeverityCount is one slice of the severity breakdown.
type SeverityCount struct {
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// MapPoint is one event positioned for the map view.
type MapPoint struct {
	EventID      string  `json:"event_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Magnitude    float64 `json:"magnitude"`
	LocationName string  `json:"location_name"`
	Severity     string  `json:"severity"`
	Value        int     `json:"value"`
}

// Summarize computes the headline KPIs. Peak is nil for an empty view.
func Summarize(quakes []domain.Quake, metric string) Summary {
	s := Summary{Events: len(quakes)}
	var peak *PeakEvent
	for _, q := range quakes {
		s.TotalCasualties += q.TotalCasualties
		s.Deaths += q.Deaths
		s.Injuries += q.Injuries

		v := metricValue(q, metric)
		if peak == nil || v > peak.Value {
			peak = &PeakEvent{
				EventID:      q.EventID,
				Date:         q.Date,
				LocationName: q.LocationName,
				Magnitude:    q.Magnitude,
				Value:        v,
			}
		}
	}
	s.Peak = peak
	return s
}

// TrendByYear sums the selected metric per year, sorted by year ascending.
// Years with no events are absent rather than zero-filled.
func TrendByYear(quakes []domain.Quake, metric string) []YearValue {
	byYear := make(map[int]int)
	for _, q := range quakes {
		byYear[q.Year] += metricValue(q, metric)
	}

	trend := make([]YearValue, 0, len(byYear))
	for year, value := range byYear {
		trend = append(trend, YearValue{Year: year, Value: value})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })
	return trend
}

// CasualtyMix sums deaths and injuries over the view.
func CasualtyMix(quakes []domain.Quake) Mix {
	var m Mix
	for _, q := range quakes {
		m.Deaths += q.Deaths
		m.Injuries += q.Injuries
	}
	return m
}

// SeverityBreakdown counts events per severity, ordered severe to minor.
// Severities with zero events are included so the chart shape is stable.
func SeverityBreakdown(quakes []domain.Quake) []SeverityCount {
	counts := map[string]int{}
	for _, q := range quakes {
		counts[domain.Severity(q.TotalCasualties)]++
	}
	return []SeverityCount{
		{Severity: domain.SeveritySevere, Count: counts[domain.SeveritySevere]},
		{Severity: domain.SeverityModerate, Count: counts[domain.SeverityModerate]},
		{Severity: domain.SeverityMinor, Count: counts[domain.SeverityMinor]},
	}
}

// MapPoints projects the view onto the map, preserving input order.
func MapPoints(quakes []domain.Quake, metric string) []MapPoint {
	points := make([]MapPoint, len(quakes))
	for i, q := range quakes {
		points[i] = MapPoint{
			EventID:      q.EventID,
			Latitude:     q.Latitude,
			Longitude:    q.Longitude,
			Magnitude:    q.Magnitude,
			LocationName: q.LocationName,
			Severity:     domain.Severity(q.TotalCasualties),
			Value:        metricValue(q, metric),
		}
	}
	return points
}

// Table returns up to TableLimit rows sorted by date descending, ties broken
// by event ID for a stable order.
func Table(quakes []domain.Quake) []Row {
	sorted := make([]domain.Quake, len(quakes))
	copy(sorted, quakes)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].EventID < sorted[j].EventID
	})

	if len(sorted) > TableLimit {
		sorted = sorted[:TableLimit]
	}

	rows := make([]Row, len(sorted))
	for i, q := range sorted {
		rows[i] = Row{Quake: q, Severity: domain.Severity(q.TotalCasualties)}
	}
	return rows
}

// exportHeader is the CSV column set of the export download: the cleaned
// columns plus the derived severity.
var exportHeader = []string{
	"event_id", "date", "year", "location_name",
	"latitude", "longitude", "magnitude", "depth_km",
	"deaths", "injuries", "total_casualties", "tsunami_flag",
	"severity",
}

// ExportCSV renders the full filtered view (no table cap) as a CSV download.
func ExportCSV(quakes []domain.Quake) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, q := range quakes {
		row := []string{
			q.EventID,
			q.Date.Format("2006-01-02"),
			strconv.Itoa(q.Year),
			q.LocationName,
			strconv.FormatFloat(q.Latitude, 'g', -1, 64),
			strconv.FormatFloat(q.Longitude, 'g', -1, 64),
			strconv.FormatFloat(q.Magnitude, 'g', -1, 64),
			strconv.FormatFloat(q.DepthKm, 'g', -1, 64),
			strconv.Itoa(q.Deaths),
			strconv.Itoa(q.Injuries),
			strconv.Itoa(q.TotalCasualties),
			strconv.Itoa(q.TsunamiFlag),
			domain.Severity(q.TotalCasualties),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
