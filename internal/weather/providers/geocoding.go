package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"weathercheck/internal/observability"
	"weathercheck/internal/weather"
)

// DefaultGeocodeURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient implements weather.Geocoder against the Open-Meteo
// geocoding API. It requests a single English-language result per lookup.
type GeocodingClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewGeocodingClient creates a geocoding client. baseURL falls back to
// DefaultGeocodeURL when empty.
func NewGeocodingClient(client *http.Client, baseURL string, metrics *observability.Metrics) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &GeocodingClient{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("geocode"),
		metrics: metrics,
	}
}

// Lookup resolves name to the first matching place. A nil place with nil
// error means the provider returned zero results.
func (c *GeocodingClient) Lookup(ctx context.Context, name string) (*weather.Place, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	values.Set("language", "en")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := doRequest(ctx, c.client, c.circuit, req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", observability.OutcomeError).Inc()
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Admin1    string  `json:"admin1"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", observability.OutcomeError).Inc()
		return nil, err
	}

	if len(payload.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", observability.OutcomeEmpty).Inc()
		return nil, nil
	}

	c.metrics.UpstreamRequests.WithLabelValues("geocode", observability.OutcomeSuccess).Inc()

	first := payload.Results[0]
	return &weather.Place{
		Name:      first.Name,
		Admin1:    first.Admin1,
		Country:   first.Country,
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
	}, nil
}
