package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathercheck/internal/observability"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

func TestGeocodingClient_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sydney", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Sydney","country":"Australia","admin1":"New South Wales","latitude":-33.8678,"longitude":151.2073}]}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL, observability.NewMetricsForTesting())
	place, err := c.Lookup(context.Background(), "Sydney")
	require.NoError(t, err)
	require.NotNil(t, place)

	assert.Equal(t, "Sydney", place.Name)
	assert.Equal(t, "New South Wales", place.Admin1)
	assert.Equal(t, "Australia", place.Country)
	assert.Equal(t, -33.8678, place.Latitude)
	assert.Equal(t, 151.2073, place.Longitude)
}

func TestGeocodingClient_Lookup_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL, observability.NewMetricsForTesting())
	place, err := c.Lookup(context.Background(), "Nowheresville")
	require.NoError(t, err)
	assert.Nil(t, place, "zero results must read as a nil place, not an error")
}

func TestGeocodingClient_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewGeocodingClient(testHTTPClient(), srv.URL, observability.NewMetricsForTesting())
	_, err := c.Lookup(context.Background(), "Sydney")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGeocodingClient_Lookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewGeocodingClient(&http.Client{Timeout: 50 * time.Millisecond}, srv.URL, observability.NewMetricsForTesting())
	_, err := c.Lookup(context.Background(), "Sydney")
	require.Error(t, err)
}
