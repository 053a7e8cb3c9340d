package weather

import "context"

// Geocoder resolves a free-text place name to coordinates.
// A nil place with a nil error means the provider found no match;
// a non-nil error means the request itself failed.
type Geocoder interface {
	Lookup(ctx context.Context, name string) (*Place, error)
}

// ForecastFetcher retrieves current conditions and the hourly series for a
// coordinate pair.
type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*ForecastData, error)
}
