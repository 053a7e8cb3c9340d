package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"weathercheck/internal/cache"
	"weathercheck/internal/observability"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only place names.
	// No network call is made in this case.
	ErrEmptyInput = errors.New("place name is empty")

	// ErrPlaceNotFound is returned when geocoding yields no match. A failed
	// geocoding request collapses into the same error so the page behaves
	// identically either way; the transport failure is still logged and
	// counted separately.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrForecastUnavailable is returned when the forecast request fails.
	ErrForecastUnavailable = errors.New("forecast unavailable")
)

const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

// Service orchestrates the geocode → forecast flow and owns the two TTL
// caches behind it.
type Service struct {
	geocoder  Geocoder
	forecasts ForecastFetcher

	placeCache    *cache.TTL[string, Place]
	forecastCache *cache.TTL[string, ForecastData]

	metrics *observability.Metrics
}

// NewService creates a Service with per-name and per-coordinate caches.
func NewService(
	geocoder Geocoder,
	forecasts ForecastFetcher,
	geocodeTTL, forecastTTL time.Duration,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		geocoder:      geocoder,
		forecasts:     forecasts,
		placeCache:    cache.NewTTL[string, Place](geocodeTTL, clock),
		forecastCache: cache.NewTTL[string, ForecastData](forecastTTL, clock),
		metrics:       metrics,
	}
}

// LookupPlace resolves a city name to a Place, consulting the geocode cache
// first. Only found places are cached, so a transient failure can be retried
// on the next submission.
func (s *Service) LookupPlace(ctx context.Context, name string) (Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Place{}, ErrEmptyInput
	}

	if p, ok := s.placeCache.Get(name); ok {
		s.metrics.CacheLookups.WithLabelValues("place", cacheHit).Inc()
		return p, nil
	}
	s.metrics.CacheLookups.WithLabelValues("place", cacheMiss).Inc()

	p, err := s.geocoder.Lookup(ctx, name)
	if err != nil {
		log.Printf("geocode failed for %q: %v", name, err)
		return Place{}, ErrPlaceNotFound
	}
	if p == nil {
		return Place{}, ErrPlaceNotFound
	}

	s.placeCache.Set(name, *p)
	return *p, nil
}

// GetForecast returns the forecast for a coordinate pair, consulting the
// forecast cache first.
func (s *Service) GetForecast(ctx context.Context, place Place) (ForecastData, error) {
	key := place.CoordKey()

	if f, ok := s.forecastCache.Get(key); ok {
		s.metrics.CacheLookups.WithLabelValues("forecast", cacheHit).Inc()
		return f, nil
	}
	s.metrics.CacheLookups.WithLabelValues("forecast", cacheMiss).Inc()

	f, err := s.forecasts.Fetch(ctx, place.Latitude, place.Longitude)
	if err != nil {
		log.Printf("forecast fetch failed for %s: %v", key, err)
		return ForecastData{}, ErrForecastUnavailable
	}

	s.forecastCache.Set(key, *f)
	return *f, nil
}

// GetReport runs the full submission flow: geocode the name, then fetch the
// forecast for the resolved coordinates. Failure at either stage
// short-circuits with the stage's sentinel error.
func (s *Service) GetReport(ctx context.Context, name string) (Report, error) {
	place, err := s.LookupPlace(ctx, name)
	if err != nil {
		return Report{}, err
	}

	forecast, err := s.GetForecast(ctx, place)
	if err != nil {
		return Report{}, err
	}

	return Report{Place: place, Forecast: forecast}, nil
}

// PurgeExpired drops stale entries from both caches and returns the total
// number removed. Called periodically by the janitor.
func (s *Service) PurgeExpired() int {
	return s.placeCache.PurgeExpired() + s.forecastCache.PurgeExpired()
}
