package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset_strength_backend/config"
	"asset_strength_backend/routes"
	"asset_strength_backend/scheduler"
	"asset_strength_backend/services"
	"asset_strength_backend/services/marketdata"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("==============================================")
	log.Println("  Asset Strength Matrix API - Starting...")
	log.Println("==============================================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Config load issue: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middlewares
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestLogger())

	// Wire the fetch/cache/strength pipeline
	boundary := services.NewRefreshBoundary(cfg.RefreshHour, cfg.RefreshTimezone)
	cache := services.NewDailyCache(boundary)
	pacer := services.NewPacer(time.Duration(cfg.FetchDelaySeconds) * time.Second)
	assets := services.NewAssetService(
		marketdata.NewCoinGeckoClient(cfg.CoinGeckoURL),
		marketdata.NewTwelveDataClient(cfg.TwelveDataURL, cfg.TwelveDataAPIKey),
		cache,
		pacer,
		boundary,
	)

	routes.SetupRoutes(router, assets, cache, boundary, cfg)

	if cfg.TwelveDataAPIKey == "" {
		log.Println("Warning: TWELVE_DATA_API_KEY not set, stock/ETF requests will fail")
	}
	now := time.Now()
	log.Printf("Last update: %s", boundary.FormatStamp(boundary.Last(now)))
	log.Printf("Next update: %s", boundary.FormatStamp(boundary.Next(now)))

	// Create HTTP server with timeouts; batch requests block on provider
	// pacing, so the write timeout is generous
	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	go func() {
		log.Printf("Server listening on 0.0.0.0:%s", cfg.Port)
		log.Println("==============================================")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Start background scheduler for the daily warm refresh
	jobScheduler := scheduler.NewScheduler(assets, cache, boundary)
	go jobScheduler.Start()

	// Graceful shutdown
	gracefulShutdown(server, jobScheduler)
}

// corsMiddleware returns a CORS middleware handler
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Requested-With")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogger returns a request logging middleware
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for health checks to reduce noise
		path := c.Request.URL.Path
		if path == "/api/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		// Only log errors or slow requests in production
		if c.Writer.Status() >= 400 || duration > 1*time.Second {
			log.Printf("%s %s %d %v", c.Request.Method, path, c.Writer.Status(), duration)
		}
	}
}

// gracefulShutdown handles graceful shutdown of the server
func gracefulShutdown(server *http.Server, jobScheduler *scheduler.Scheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-quit
	log.Printf("Received signal %v, shutting down gracefully...", sig)

	// Stop scheduler first
	if jobScheduler != nil {
		jobScheduler.Stop()
	}

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown completed")
}
