package domain

import "time"

// RawRecord is one row of the raw NOAA CSV after header normalization.
// All fields are kept as strings; parsing and validation happen in CleanRecord.
type RawRecord struct {
	EventID      string
	Year         string
	Month        string
	Day          string
	LocationName string
	Latitude     string
	Longitude    string
	Magnitude    string
	DepthKm      string
	Deaths       string
	Injuries     string
	TsunamiFlag  string

	// Line is the 1-based line number in the source file, for drop reporting.
	Line int
}

// Quake is a cleaned earthquake record. Field order matches the cleaned CSV
// column order.
type Quake struct {
	EventID         string    `json:"event_id"`
	Date            time.Time `json:"date"`
	Year            int       `json:"year"`
	LocationName    string    `json:"location_name"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Magnitude       float64   `json:"magnitude"`
	DepthKm         float64   `json:"depth_km"`
	Deaths          int       `json:"deaths"`
	Injuries        int       `json:"injuries"`
	TotalCasualties int       `json:"total_casualties"`
	TsunamiFlag     int       `json:"tsunami_flag"`
}

// Severity labels derived from total casualties.
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Severity classifies an event by total casualties for MCI planning.
func Severity(totalCasualties int) string {
	switch {
	case totalCasualties >= 1000:
		return SeveritySevere
	case totalCasualties >= 100:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}
