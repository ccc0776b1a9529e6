package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asset_strength_backend/config"
	"asset_strength_backend/models"
	"asset_strength_backend/routes"
	"asset_strength_backend/services"
	"asset_strength_backend/services/marketdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	name   string
	series map[string][]float64
	calls  int
}

func (f *stubFetcher) FetchWeeklyCloses(id string, maPeriod int) ([]float64, error) {
	f.calls++
	s, ok := f.series[id]
	if !ok {
		return nil, &marketdata.FetchError{
			Provider: f.name,
			Message:  "no price data available for " + id,
		}
	}
	return s, nil
}

func (f *stubFetcher) Name() string {
	return f.name
}

func setupRouter(crypto, equity marketdata.PriceFetcher, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	boundary := services.NewRefreshBoundary(8, "America/New_York")
	cache := services.NewDailyCache(boundary)
	assets := services.NewAssetService(crypto, equity, cache, services.NewPacer(0), boundary)

	router := gin.New()
	routes.SetupRoutes(router, assets, cache, boundary, cfg)
	return router
}

func marketFetchers() (*stubFetcher, *stubFetcher) {
	crypto := &stubFetcher{name: "CoinGecko", series: map[string][]float64{
		"bitcoin": {110, 90},
	}}
	equity := &stubFetcher{name: "Twelve Data", series: map[string][]float64{
		"GLD": {50, 50},
	}}
	return crypto, equity
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{TwelveDataAPIKey: "key"})

	w := doJSON(router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status              string `json:"status"`
		CacheSize           int    `json:"cache_size"`
		LastUpdate          string `json:"last_update"`
		NextUpdate          string `json:"next_update"`
		SecondsUntilRefresh int    `json:"seconds_until_refresh"`
		APIs                struct {
			TwelveData string `json:"twelve_data"`
			CoinGecko  string `json:"coingecko"`
		} `json:"apis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, 0, body.CacheSize)
	assert.True(t, strings.HasSuffix(body.LastUpdate, "08:00 AM EST"))
	assert.True(t, strings.HasSuffix(body.NextUpdate, "08:00 AM EST"))
	assert.Greater(t, body.SecondsUntilRefresh, 0)
	assert.LessOrEqual(t, body.SecondsUntilRefresh, 86400)
	assert.Equal(t, "configured", body.APIs.TwelveData)
	assert.Equal(t, "enabled (no key required)", body.APIs.CoinGecko)
}

func TestHealthCheckWithoutAPIKey(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"twelve_data":"not configured"`)
}

func TestGetAsset(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodGet, "/api/asset/BTC?ma_period=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var record models.AssetRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "BTC", record.Symbol)
	assert.Equal(t, 110.0, record.CurrentPrice)
	assert.Equal(t, 100.0, record.MovingAverage)
	assert.True(t, record.IsAboveMA)
	assert.Equal(t, "CoinGecko", record.Source)
	assert.Equal(t, 2, record.DataPoints)
}

func TestGetAssetDefaultPeriod(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	// Two weeks of data cannot cover the default 20-week SMA
	w := doJSON(router, http.MethodGet, "/api/asset/BTC", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient data for 20-week SMA")
}

func TestGetAssetInvalidPeriod(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	for _, path := range []string{
		"/api/asset/BTC?ma_period=abc",
		"/api/asset/BTC?ma_period=0",
		"/api/asset/BTC?ma_period=-3",
	} {
		w := doJSON(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
		assert.Contains(t, w.Body.String(), "invalid ma_period")
	}
}

func TestGetAssetUnknownSymbol(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodGet, "/api/asset/FAKETICKER?ma_period=2", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no price data available")
}

func TestGetAssetsBatch(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodPost, "/api/assets",
		`{"symbols": ["BTC", "GOLD", "FAKETICKER"], "ma_period": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body.Data, 2)
	assert.Contains(t, body.Data, "BTC")
	assert.Contains(t, body.Data, "GOLD")
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors["FAKETICKER"], "no price data available")
	assert.NotEmpty(t, body.LastUpdate)
	assert.NotEmpty(t, body.Timestamp)
}

func TestGetAssetsBatchNoErrors(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodPost, "/api/assets", `{"symbols": ["BTC"], "ma_period": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	// A fully successful batch reports errors as null, not {}
	assert.Contains(t, w.Body.String(), `"errors":null`)
}

func TestGetAssetsBadBody(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodPost, "/api/assets", `{"symbols": "BTC"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMatrix(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	w := doJSON(router, http.MethodPost, "/api/matrix",
		`{"symbols": ["BTC", "GOLD", "FAKETICKER"], "ma_period": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.MatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body.Assets, 2)
	require.Len(t, body.Matrix, 2)
	assert.NotContains(t, body.Matrix, "FAKETICKER")

	strength := body.Matrix["BTC"]["GOLD"]
	assert.True(t, strength.IsAboveMA)
	assert.Equal(t, 10.0, strength.Strength)
	assert.Equal(t, 2.2, strength.Ratio)
}

func TestClearCache(t *testing.T) {
	crypto, equity := marketFetchers()
	router := setupRouter(crypto, equity, &config.Config{})

	// Prime the cache, then confirm the second request is a hit
	doJSON(router, http.MethodGet, "/api/asset/BTC?ma_period=2", "")
	doJSON(router, http.MethodGet, "/api/asset/BTC?ma_period=2", "")
	assert.Equal(t, 1, crypto.calls)

	w := doJSON(router, http.MethodPost, "/api/clear-cache", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cache cleared")

	// Clearing forces a real refetch
	doJSON(router, http.MethodGet, "/api/asset/BTC?ma_period=2", "")
	assert.Equal(t, 2, crypto.calls)
}
