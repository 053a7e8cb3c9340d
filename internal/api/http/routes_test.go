package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathercheck/internal/observability"
	"weathercheck/internal/view"
	"weathercheck/internal/weather"
	"weathercheck/internal/weather/providers"
)

const sydneyGeocodeBody = `{"results":[{"name":"Sydney","country":"Australia","admin1":"New South Wales","latitude":-33.8678,"longitude":151.2073}]}`

// sydneyForecastBody builds a forecast payload with the given number of
// hourly entries, current temperature 22.0 and weather code 2.
func sydneyForecastBody(hours int) string {
	times := make([]string, 0, hours)
	temps := make([]string, 0, hours)
	probs := make([]string, 0, hours)
	codes := make([]string, 0, hours)
	base := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	for i := 0; i < hours; i++ {
		times = append(times, fmt.Sprintf("%q", base.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04")))
		temps = append(temps, fmt.Sprintf("%.1f", 20.0+float64(i)*0.1))
		probs = append(probs, fmt.Sprintf("%d", i))
		codes = append(codes, "2")
	}
	return fmt.Sprintf(`{
		"current_weather": {"temperature": 22.0, "windspeed": 14.5, "winddirection": 180.0, "weathercode": 2, "time": "2026-08-23T10:00"},
		"hourly": {
			"time": [%s],
			"temperature_2m": [%s],
			"precipitation_probability": [%s],
			"weathercode": [%s]
		}
	}`, strings.Join(times, ","), strings.Join(temps, ","), strings.Join(probs, ","), strings.Join(codes, ","))
}

type upstreams struct {
	geocode  *httptest.Server
	forecast *httptest.Server
}

func (u *upstreams) close() {
	u.geocode.Close()
	u.forecast.Close()
}

// newTestApp stands up a fiber app backed by the real service and provider
// clients, pointed at httptest doubles of the two upstream endpoints.
func newTestApp(t *testing.T, geocodeHandler, forecastHandler http.HandlerFunc) (*fiber.App, *upstreams) {
	t.Helper()

	u := &upstreams{
		geocode:  httptest.NewServer(geocodeHandler),
		forecast: httptest.NewServer(forecastHandler),
	}

	metrics := observability.NewMetricsForTesting()
	client := &http.Client{Timeout: 5 * time.Second}
	svc := weather.NewService(
		providers.NewGeocodingClient(client, u.geocode.URL, metrics),
		providers.NewForecastClient(client, u.forecast.URL, metrics),
		600*time.Second,
		300*time.Second,
		clockwork.NewFakeClock(),
		metrics,
	)

	app := fiber.New()
	RegisterRoutes(app, svc, "Sydney", metrics)
	return app, u
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func failingHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIndexPage_PrefilledCity(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, `value="Sydney"`)
	assert.NotContains(t, html, "<canvas", "no chart before a submission")
}

func TestWeatherPage_EmptyInput(t *testing.T) {
	geocodeCalls := 0
	app, u := newTestApp(t, func(w http.ResponseWriter, _ *http.Request) {
		geocodeCalls++
		w.WriteHeader(http.StatusOK)
	}, jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather?city=%20%20", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, msgEmptyInput)
	assert.Equal(t, 0, geocodeCalls, "empty input must not reach the network")
}

func TestWeatherPage_PlaceNotFound(t *testing.T) {
	forecastCalls := 0
	app, u := newTestApp(t, jsonHandler(`{}`), func(w http.ResponseWriter, _ *http.Request) {
		forecastCalls++
		w.WriteHeader(http.StatusOK)
	})
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather?city=Nowheresville", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "find that city")
	assert.NotContains(t, html, "<canvas")
	assert.Equal(t, 0, forecastCalls, "a failed geocode must not trigger a forecast fetch")
}

func TestWeatherPage_ForecastFailure(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), failingHandler(http.StatusServiceUnavailable))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather?city=Sydney", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Could not fetch weather data")
	assert.NotContains(t, html, "<canvas", "no chart on fetch failure")
	assert.NotContains(t, html, "Next 24 hours", "no table on fetch failure")
}

func TestWeatherPage_EndToEndSydney(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), jsonHandler(sydneyForecastBody(30)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather?city=Sydney", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	assert.Contains(t, html, "Sydney, New South Wales, Australia")
	assert.Contains(t, html, "Partly cloudy")
	assert.Contains(t, html, "22.0")
	assert.Contains(t, html, view.BandMild.Color(), "mild band background for 22.0°C")
	assert.Contains(t, html, "<canvas")

	// Header row plus exactly the first 24 hourly entries.
	assert.Equal(t, 25, strings.Count(html, "<tr>"))
	assert.Contains(t, html, "2026-08-23 23:00")
	assert.NotContains(t, html, "2026-08-24 00:00", "entries past the first 24 must be dropped")
}

func TestWeatherPage_GeocodeCacheSkipsSecondCall(t *testing.T) {
	geocodeCalls := 0
	app, u := newTestApp(t, func(w http.ResponseWriter, _ *http.Request) {
		geocodeCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sydneyGeocodeBody))
	}, jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather?city=Sydney", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 1, geocodeCalls, "repeat submissions within the TTL must hit the cache")
}

func TestWeatherAPI_MissingCity(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeatherAPI_NotFound(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(`{"results":[]}`), jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Nowheresville", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWeatherAPI_ForecastFailure(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), failingHandler(http.StatusInternalServerError))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Sydney", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestWeatherAPI_Success(t *testing.T) {
	app, u := newTestApp(t, jsonHandler(sydneyGeocodeBody), jsonHandler(sydneyForecastBody(24)))
	defer u.close()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Sydney", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report weather.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "Sydney", report.Place.Name)
	assert.Equal(t, "Australia", report.Place.Country)
	require.NotNil(t, report.Forecast.Current.TemperatureC)
	assert.Equal(t, 22.0, *report.Forecast.Current.TemperatureC)
	assert.Len(t, report.Forecast.Hourly, 24)
}
