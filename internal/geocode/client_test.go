package geocode_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ASCBird0277/ca-app/internal/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "200 Elm St, Savannah, GA", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "ops@example.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "32.0809", "lon": "-81.0912"}]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL, "ops@example.com", zap.NewNop())
	lat, lon, err := client.Geocode("200 Elm St, Savannah, GA")
	require.NoError(t, err)
	assert.InDelta(t, 32.0809, lat, 1e-9)
	assert.InDelta(t, -81.0912, lon, 1e-9)
}

func TestGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL, "", zap.NewNop())
	_, _, err := client.Geocode("nowhere at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocode result")
}

func TestGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL, "", zap.NewNop())
	_, _, err := client.Geocode("200 Elm St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
