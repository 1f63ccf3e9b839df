package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"uptime-report-backend/config"
	"uptime-report-backend/internal/mw"
	"uptime-report-backend/internal/report"
	"uptime-report-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, manager *report.Manager, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, manager)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.Use(rateLimiter)

	// Report job contract: trigger returns a job id immediately,
	// get_report polls it.
	r.GET("/trigger_report", handler.TriggerReport)
	r.POST("/get_report", handler.GetReport)

	// GET /locations
	r.GET("/locations", caching, handler.GetLocations)

	return r
}
