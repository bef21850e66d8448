package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/config"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/mw"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/worker"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, pool *worker.Pool, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/trigger_report", handler.TriggerReport)
		// Never cached: the body flips from "Running" to the file.
		api.GET("/get_report", handler.GetReport)
		api.GET("/stores", caching, handler.GetStores)
	}

	return r
}
