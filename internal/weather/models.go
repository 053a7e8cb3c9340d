package weather

import (
	"fmt"
	"time"
)

// Place is a geocoded location: the first match the geocoding endpoint
// returned for a free-text city name. It is immutable once produced.
type Place struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"` // first-level administrative region, optional
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CoordKey returns a canonical string key for indexing this place's
// coordinates in the forecast cache.
func (p Place) CoordKey() string {
	return fmt.Sprintf("%.4f,%.4f", p.Latitude, p.Longitude)
}

// CurrentConditions holds the provider's current-weather block. All fields
// are optional: the provider may omit any of them, and the page renders a
// placeholder instead.
type CurrentConditions struct {
	TemperatureC     *float64 `json:"temperatureC,omitempty"`
	WindSpeedKmh     *float64 `json:"windSpeedKmh,omitempty"`
	WindDirectionDeg *float64 `json:"windDirectionDeg,omitempty"`
	WeatherCode      *int     `json:"weatherCode,omitempty"`
}

// HourlyPoint is one entry of the hourly series. Time is the local time of
// the queried location as resolved by the forecast provider.
type HourlyPoint struct {
	Time          time.Time `json:"time"`
	TemperatureC  float64   `json:"temperatureC"`
	PrecipProbPct *int      `json:"precipProbPct,omitempty"`
	WeatherCode   *int      `json:"weatherCode,omitempty"`
}

// ForecastData is the projected forecast payload for one coordinate pair:
// current conditions plus the hourly series ordered by time ascending.
type ForecastData struct {
	Current CurrentConditions `json:"current"`
	Hourly  []HourlyPoint     `json:"hourly"`
}

// Report pairs a resolved place with the forecast fetched for its
// coordinates within the same submission.
type Report struct {
	Place    Place        `json:"place"`
	Forecast ForecastData `json:"forecast"`
}
