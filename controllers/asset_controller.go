package controllers

import (
	"net/http"
	"strconv"
	"time"

	"asset_strength_backend/config"
	"asset_strength_backend/models"
	"asset_strength_backend/services"

	"github.com/gin-gonic/gin"
)

// DefaultMAPeriod is the moving-average period used when the client omits
// ma_period.
const DefaultMAPeriod = 20

// AssetController handles asset metric and strength matrix requests
type AssetController struct {
	assets   *services.AssetService
	cache    *services.DailyCache
	boundary *services.RefreshBoundary
	cfg      *config.Config
}

// NewAssetController creates a new asset controller
func NewAssetController(assets *services.AssetService, cache *services.DailyCache, boundary *services.RefreshBoundary, cfg *config.Config) *AssetController {
	return &AssetController{
		assets:   assets,
		cache:    cache,
		boundary: boundary,
		cfg:      cfg,
	}
}

// HealthCheck reports service status and refresh timing
// GET /api/health
func (ac *AssetController) HealthCheck(c *gin.Context) {
	now := time.Now().In(ac.boundary.Location)
	last := ac.boundary.Last(now)
	next := ac.boundary.Next(now)

	twelveData := "not configured"
	if ac.cfg.TwelveDataAPIKey != "" {
		twelveData = "configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"timestamp":             now.Format(time.RFC3339),
		"cache_size":            ac.cache.Len(),
		"last_update":           ac.boundary.FormatStamp(last),
		"next_update":           ac.boundary.FormatStamp(next),
		"seconds_until_refresh": ac.boundary.SecondsUntilNext(now),
		"apis": gin.H{
			"twelve_data": twelveData,
			"coingecko":   "enabled (no key required)",
		},
	})
}

// GetAsset returns the computed record for a single asset
// GET /api/asset/:symbol?ma_period=20
func (ac *AssetController) GetAsset(c *gin.Context) {
	symbol := c.Param("symbol")

	maPeriod, err := strconv.Atoi(c.DefaultQuery("ma_period", strconv.Itoa(DefaultMAPeriod)))
	if err != nil || maPeriod < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ma_period"})
		return
	}

	record, err := ac.assets.GetAsset(symbol, maPeriod)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsClientError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetAssets returns records for multiple assets; per-symbol failures are
// collected in the errors map and do not fail the batch
// POST /api/assets
func (ac *AssetController) GetAssets(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MAPeriod <= 0 {
		req.MAPeriod = DefaultMAPeriod
	}

	records, errs := ac.assets.GetAssets(req.Symbols, req.MAPeriod)
	if len(errs) == 0 {
		errs = nil
	}

	now := time.Now().In(ac.boundary.Location)
	last := ac.boundary.Last(now)

	c.JSON(http.StatusOK, models.BatchResponse{
		Data:       records,
		Errors:     errs,
		LastUpdate: ac.boundary.FormatStamp(last),
		NextUpdate: ac.boundary.FormatStamp(last.AddDate(0, 0, 1)),
		Timestamp:  now.Format(time.RFC3339),
	})
}

// GetMatrix returns the full pairwise relative-strength matrix for the
// requested symbols; symbols that fail to resolve are silently excluded
// POST /api/matrix
func (ac *AssetController) GetMatrix(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MAPeriod <= 0 {
		req.MAPeriod = DefaultMAPeriod
	}

	records, matrix := ac.assets.StrengthMatrix(req.Symbols, req.MAPeriod)

	now := time.Now().In(ac.boundary.Location)
	last := ac.boundary.Last(now)

	c.JSON(http.StatusOK, models.MatrixResponse{
		Assets:     records,
		Matrix:     matrix,
		LastUpdate: ac.boundary.FormatStamp(last),
		NextUpdate: ac.boundary.FormatStamp(last.AddDate(0, 0, 1)),
		Timestamp:  now.Format(time.RFC3339),
	})
}

// ClearCache unconditionally empties the daily cache
// POST /api/clear-cache
func (ac *AssetController) ClearCache(c *gin.Context) {
	ac.cache.Clear()
	c.JSON(http.StatusOK, gin.H{
		"message":   "Cache cleared",
		"timestamp": time.Now().In(ac.boundary.Location).Format(time.RFC3339),
	})
}
