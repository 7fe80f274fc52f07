// Package dashboard computes the filtered views and aggregates served by the
// HTTP API. Everything here is pure: slices in, slices out, no I/O.
package dashboard

import (
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
)

// MagnitudeWindow is the half-width of the magnitude filter band. A target of
// 6.5 keeps events in [6.25, 6.75].
const MagnitudeWindow = 0.25

// Metric names selectable for trend and peak aggregation.
const (
	MetricTotalCasualties = "total_casualties"
	MetricDeaths          = "deaths"
	MetricInjuries        = "injuries"
)

// Category names for the tsunami split.
const (
	CategoryAll          = "all"
	CategoryQuakeOnly    = "quake_only"
	CategoryQuakeTsunami = "quake_tsunami"
)

// Params selects a subset of the cleaned dataset. The zero value applies no
// filters at all.
type Params struct {
	// Magnitude is the target magnitude; events within ±MagnitudeWindow are
	// kept. Nil disables the magnitude filter.
	Magnitude *float64

	// YearFrom and YearTo bound the event year inclusively. Zero means
	// unbounded on that side.
	YearFrom int
	YearTo   int

	// Severities keeps only events whose derived severity is in the set.
	// Empty keeps all.
	Severities []string

	// CasualtiesOnly keeps only events with total_casualties > 0.
	CasualtiesOnly bool

	// Category splits by tsunami flag: all, quake_only, quake_tsunami.
	// Empty means all.
	Category string

	// Metric selects the value aggregated by the trend and reported as the
	// peak event. Empty means total_casualties.
	Metric string
}

// Filter returns the events matching p, preserving input order.
func Filter(quakes []domain.Quake, p Params) []domain.Quake {
	severities := make(map[string]bool, len(p.Severities))
	for _, s := range p.Severities {
		severities[s] = true
	}

	out := make([]domain.Quake, 0, len(quakes))
	for _, q := range quakes {
		if p.Magnitude != nil {
			if q.Magnitude < *p.Magnitude-MagnitudeWindow || q.Magnitude > *p.Magnitude+MagnitudeWindow {
				continue
			}
		}
		if p.YearFrom != 0 && q.Year < p.YearFrom {
			continue
		}
		if p.YearTo != 0 && q.Year > p.YearTo {
			continue
		}
		if len(severities) > 0 && !severities[domain.Severity(q.TotalCasualties)] {
			continue
		}
		if p.CasualtiesOnly && q.TotalCasualties == 0 {
			continue
		}
		switch p.Category {
		case CategoryQuakeOnly:
			if q.TsunamiFlag != 0 {
				continue
			}
		case CategoryQuakeTsunami:
			if q.TsunamiFlag != 1 {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// metricValue extracts the selected metric from a record. An empty or unknown
// metric falls back to total casualties; the API layer validates metric names
// before they reach here.
func metricValue(q domain.Quake, metric string) int {
	switch metric {
	case MetricDeaths:
		return q.Deaths
	case MetricInjuries:
		return q.Injuries
	default:
		return q.TotalCasualties
	}
}
