package wrappers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeoWrapper_ResolveAddress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/geo/addresses/42", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"addressId": 42, "cityCode": "ALA", "street": "Абая", "building": "10"}`)) // nolint:errcheck
		}))
		defer srv.Close()

		gw := &GeoWrapper{BaseURL: srv.URL}

		info, err := gw.ResolveAddress(42)
		require.NoError(t, err)
		require.Equal(t, "ALA", info.CityCode)
		require.Equal(t, "Абая", info.Street)
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "address not found"}`)) // nolint:errcheck
		}))
		defer srv.Close()

		gw := &GeoWrapper{BaseURL: srv.URL}

		_, err := gw.ResolveAddress(99)
		require.EqualError(t, err, "address not found")
	})

	t.Run("connection error", func(t *testing.T) {
		gw := &GeoWrapper{BaseURL: "http://127.0.0.1:1"}

		_, err := gw.ResolveAddress(1)
		require.Error(t, err)
	})
}
