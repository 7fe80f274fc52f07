package domain

import (
	"context"
	"log/slog"
)

// EnrichLocationName fills a blank location name via reverse geocoding.
// If geocoder is nil, the name is already set, or geocoding fails, the quake
// is returned unchanged. Enrichment never drops rows.
func EnrichLocationName(ctx context.Context, q Quake, geocoder Geocoder, logger *slog.Logger) Quake {
	if geocoder == nil || q.LocationName != "" {
		return q
	}

	result, err := geocoder.ReverseGeocode(ctx, q.Latitude, q.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", q.EventID,
			"lat", q.Latitude,
			"lon", q.Longitude,
			"error", err,
		)
		return q
	}
	if result.PlaceName == "" {
		return q
	}

	q.LocationName = result.PlaceName
	return q
}
