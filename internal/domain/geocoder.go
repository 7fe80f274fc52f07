package domain

import "context"

// GeocodingResult contains place data returned by a geocoding provider.
type GeocodingResult struct {
	PlaceName        string
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place names.
type Geocoder interface {
	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
