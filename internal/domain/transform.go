package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Drop reasons reported by CleanRecord.
const (
	ReasonMissingYear      = "missing_year"
	ReasonMissingLatitude  = "missing_latitude"
	ReasonMissingLongitude = "missing_longitude"
	ReasonMissingMagnitude = "missing_magnitude"
	ReasonMissingDepth     = "missing_depth"
	ReasonInvalidDate      = "invalid_date"
)

// DropError reports why a raw row failed the validation predicate.
type DropError struct {
	Reason string
	Line   int
}

func (e *DropError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// CleanRecord validates and normalizes a raw row into a Quake.
// Rows failing a required-field check return a *DropError carrying the reason.
func CleanRecord(raw RawRecord) (Quake, error) {
	year, ok := parseFloat(raw.Year)
	if !ok {
		return Quake{}, &DropError{Reason: ReasonMissingYear, Line: raw.Line}
	}
	lat, ok := parseFloat(raw.Latitude)
	if !ok {
		return Quake{}, &DropError{Reason: ReasonMissingLatitude, Line: raw.Line}
	}
	lon, ok := parseFloat(raw.Longitude)
	if !ok {
		return Quake{}, &DropError{Reason: ReasonMissingLongitude, Line: raw.Line}
	}
	magnitude, ok := parseFloat(raw.Magnitude)
	if !ok {
		return Quake{}, &DropError{Reason: ReasonMissingMagnitude, Line: raw.Line}
	}
	depth, ok := parseFloat(raw.DepthKm)
	if !ok {
		return Quake{}, &DropError{Reason: ReasonMissingDepth, Line: raw.Line}
	}

	date, ok := composeDate(int(year), parseIntOrDefault(raw.Month, 1), parseIntOrDefault(raw.Day, 1))
	if !ok {
		return Quake{}, &DropError{Reason: ReasonInvalidDate, Line: raw.Line}
	}

	deaths := parseIntOrDefault(raw.Deaths, 0)
	injuries := parseIntOrDefault(raw.Injuries, 0)

	q := Quake{
		EventID:         strings.TrimSpace(raw.EventID),
		Date:            date,
		Year:            int(year),
		LocationName:    strings.TrimSpace(raw.LocationName),
		Latitude:        lat,
		Longitude:       lon,
		Magnitude:       magnitude,
		DepthKm:         depth,
		Deaths:          deaths,
		Injuries:        injuries,
		TotalCasualties: deaths + injuries,
		TsunamiFlag:     NormalizeTsunamiFlag(raw.TsunamiFlag),
	}

	if q.EventID == "" {
		q.EventID = GenerateID(q.Year, q.Latitude, q.Longitude, q.Magnitude, q.Date)
	}

	return q, nil
}

// parseFloat parses a trimmed string as float64. Blank or unparsable values
// report !ok, mirroring coerce-to-numeric-then-drop semantics.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseIntOrDefault parses an integer-valued field, accepting float spellings
// like "3.0". Blank or unparsable values return def.
func parseIntOrDefault(s string, def int) int {
	v, ok := parseFloat(s)
	if !ok {
		return def
	}
	return int(v)
}

// composeDate builds a UTC date from components, rejecting combinations that
// do not form a real calendar date (month 13, Feb 30, ...). time.Date
// silently normalizes overflow, so the components are checked by round-trip.
func composeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeTsunamiFlag maps the many tsunami-column spellings to 0 or 1.
// Truthy: y, yes, true, t, 1 (case-insensitive). Other numeric values are
// parsed and reduced to non-zero → 1. Everything else, including "nan" and
// blank, is 0.
func NormalizeTsunamiFlag(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "y", "yes", "true", "t", "1":
		return 1
	case "n", "no", "false", "f", "0", "nan", "none", "":
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v != 0 {
		return 1
	}
	return 0
}

// GenerateID produces a deterministic ID for rows without a NOAA Id.
// Reprocessing the same raw row yields the same ID, keeping cleaner reruns
// byte-identical and downstream consumers replay-safe.
func GenerateID(year int, lat, lon, magnitude float64, date time.Time) string {
	input := fmt.Sprintf("%d|%.4f|%.4f|%g|%s", year, lat, lon, magnitude, date.Format("2006-01-02"))
	hash := sha256.Sum256([]byte(input))
	return "eq-" + hex.EncodeToString(hash[:8])
}
