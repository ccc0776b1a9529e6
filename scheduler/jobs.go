package scheduler

import (
	"fmt"
	"log"

	"asset_strength_backend/services"

	"github.com/go-co-op/gocron"
)

// Scheduler re-warms the daily cache shortly after each refresh boundary so
// the first dashboard request of the day is served from fresh data.
type Scheduler struct {
	cron     *gocron.Scheduler
	assets   *services.AssetService
	cache    *services.DailyCache
	boundary *services.RefreshBoundary
}

// NewScheduler creates a new scheduler instance
func NewScheduler(assets *services.AssetService, cache *services.DailyCache, boundary *services.RefreshBoundary) *Scheduler {
	return &Scheduler{
		cron:     gocron.NewScheduler(boundary.Location),
		assets:   assets,
		cache:    cache,
		boundary: boundary,
	}
}

// Start starts all scheduled jobs
func (s *Scheduler) Start() {
	log.Println("Starting scheduler...")

	// Run a few minutes past the boundary so every entry has expired
	at := fmt.Sprintf("%02d:05", s.boundary.Hour)
	s.cron.Every(1).Day().At(at).Do(func() {
		s.refreshCachedAssets()
	})

	s.cron.StartAsync()
	log.Println("Scheduler started successfully")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}

// refreshCachedAssets recomputes every cached (symbol, period) pair. The
// entries have crossed the boundary by now, so GetAsset performs real,
// paced provider fetches.
func (s *Scheduler) refreshCachedAssets() {
	keys := s.cache.Keys()
	log.Printf("Daily refresh: warming %d cached assets", len(keys))

	for _, key := range keys {
		symbol, maPeriod, ok := services.ParseCacheKey(key)
		if !ok {
			log.Printf("Skipping unrecognized cache key %q", key)
			continue
		}
		if _, err := s.assets.GetAsset(symbol, maPeriod); err != nil {
			log.Printf("Daily refresh failed for %s: %v", symbol, err)
		}
	}

	log.Println("Daily refresh completed")
}
