package routes

import (
	"asset_strength_backend/config"
	"asset_strength_backend/controllers"
	"asset_strength_backend/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, assets *services.AssetService, cache *services.DailyCache, boundary *services.RefreshBoundary, cfg *config.Config) {
	assetController := controllers.NewAssetController(assets, cache, boundary, cfg)

	api := router.Group("/api")
	{
		api.GET("/health", assetController.HealthCheck)
		api.GET("/asset/:symbol", assetController.GetAsset)
		api.POST("/assets", assetController.GetAssets)
		api.POST("/matrix", assetController.GetMatrix)
		api.POST("/clear-cache", assetController.ClearCache)
	}
}
