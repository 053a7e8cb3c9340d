package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weathercheck/internal/observability"
	"weathercheck/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// hourlyTimeLayout is the local-time layout Open-Meteo uses for hourly
// timestamps when timezone=auto.
const hourlyTimeLayout = "2006-01-02T15:04"

// ForecastClient implements weather.ForecastFetcher against the Open-Meteo
// forecast API, requesting current weather plus hourly temperature,
// precipitation probability, and weather code in the location's local time.
type ForecastClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewForecastClient creates a forecast client. baseURL falls back to
// DefaultForecastURL when empty.
func NewForecastClient(client *http.Client, baseURL string, metrics *observability.Metrics) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("forecast"),
		metrics: metrics,
	}
}

// Fetch retrieves and projects the forecast payload for a coordinate pair.
func (c *ForecastClient) Fetch(ctx context.Context, lat, lon float64) (*weather.ForecastData, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current_weather", "true")
	values.Set("hourly", "temperature_2m,precipitation_probability,weathercode")
	values.Set("timezone", "auto")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := doRequest(ctx, c.client, c.circuit, req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", observability.OutcomeError).Inc()
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather *struct {
			Temperature   *float64 `json:"temperature"`
			WindSpeed     *float64 `json:"windspeed"`
			WindDirection *float64 `json:"winddirection"`
			WeatherCode   *int     `json:"weathercode"`
		} `json:"current_weather"`
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature2m []float64 `json:"temperature_2m"`
			PrecipProb    []int     `json:"precipitation_probability"`
			WeatherCode   []int     `json:"weathercode"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", observability.OutcomeError).Inc()
		return nil, err
	}

	c.metrics.UpstreamRequests.WithLabelValues("forecast", observability.OutcomeSuccess).Inc()

	data := &weather.ForecastData{}
	if cw := payload.CurrentWeather; cw != nil {
		data.Current = weather.CurrentConditions{
			TemperatureC:     cw.Temperature,
			WindSpeedKmh:     cw.WindSpeed,
			WindDirectionDeg: cw.WindDirection,
			WeatherCode:      cw.WeatherCode,
		}
	}

	h := payload.Hourly
	data.Hourly = make([]weather.HourlyPoint, 0, len(h.Time))
	for i, raw := range h.Time {
		if i >= len(h.Temperature2m) {
			break
		}

		ts, err := time.Parse(hourlyTimeLayout, raw)
		if err != nil {
			// Tolerate a full RFC3339 timestamp if the provider ever sends one.
			ts, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				continue
			}
		}

		point := weather.HourlyPoint{
			Time:         ts,
			TemperatureC: h.Temperature2m[i],
		}
		if i < len(h.PrecipProb) {
			pp := h.PrecipProb[i]
			point.PrecipProbPct = &pp
		}
		if i < len(h.WeatherCode) {
			wc := h.WeatherCode[i]
			point.WeatherCode = &wc
		}

		data.Hourly = append(data.Hourly, point)
	}

	return data, nil
}
