package marketdata

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwelveDataFetchWeeklyCloses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_series", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "1week", q.Get("interval"))
		assert.Equal(t, "30", q.Get("outputsize")) // 20+10
		assert.Equal(t, "testkey", q.Get("apikey"))

		fmt.Fprint(w, `{"status": "ok", "values": [{"close": "110.50"}, {"close": "100.00"}]}`)
	}))
	defer server.Close()

	client := NewTwelveDataClient(server.URL, "testkey")
	closes, err := client.FetchWeeklyCloses("AAPL", 20)
	require.NoError(t, err)

	// Bars arrive most recent first and stay that way
	assert.Equal(t, []float64{110.5, 100.0}, closes)
}

func TestTwelveDataProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Twelve Data reports failures in-band with HTTP 200
		fmt.Fprint(w, `{"status": "error", "message": "symbol not found"}`)
	}))
	defer server.Close()

	client := NewTwelveDataClient(server.URL, "testkey")
	_, err := client.FetchWeeklyCloses("NOPE", 20)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "Twelve Data", fetchErr.Provider)
	assert.Contains(t, err.Error(), "symbol not found")
}

func TestTwelveDataProviderErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error"}`)
	}))
	defer server.Close()

	client := NewTwelveDataClient(server.URL, "testkey")
	_, err := client.FetchWeeklyCloses("NOPE", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown error")
}

func TestTwelveDataEmptyValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok", "values": []}`)
	}))
	defer server.Close()

	client := NewTwelveDataClient(server.URL, "testkey")
	_, err := client.FetchWeeklyCloses("AAPL", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data available for AAPL")
}

func TestTwelveDataMalformedClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok", "values": [{"close": "n/a"}]}`)
	}))
	defer server.Close()

	client := NewTwelveDataClient(server.URL, "testkey")
	_, err := client.FetchWeeklyCloses("AAPL", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed closing price")
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &FetchError{Provider: "CoinGecko", Message: "request failed", Err: cause}

	assert.Equal(t, "request failed: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))

	bare := &FetchError{Provider: "CoinGecko", Message: "no price data"}
	assert.Equal(t, "no price data", bare.Error())
}
