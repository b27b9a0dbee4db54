package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"kaposvar-plus-backend/config"
	"kaposvar-plus-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, handler *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Parking session ledger (plate-keyed).
		api.POST("/parking/sessions", handler.StartSession)
		api.GET("/parking/sessions/current", handler.GetSession)
		api.DELETE("/parking/sessions/current", handler.StopSession)
		api.GET("/parking/zones", caching, handler.GetLedgerZones)

		// Car/zone meter.
		api.GET("/cars", handler.GetCars)
		api.POST("/cars", handler.AddCar)
		api.PUT("/cars/selected", handler.SelectCar)
		api.GET("/meter", handler.GetMeter)
		api.GET("/meter/zones", caching, handler.GetMeterZones)
		api.PUT("/meter/zone", handler.SelectZone)
		api.PUT("/meter/location", handler.RecordLocation)
		api.POST("/meter/start", handler.StartMeter)
		api.POST("/meter/stop", handler.StopMeter)

		// Inspector snapshot validator.
		api.POST("/inspector/validate", handler.ValidatePlate)
		api.GET("/inspector/snapshot", handler.GetSnapshot)
		api.POST("/inspector/snapshot/refresh", handler.RefreshSnapshot)

		// Event tickets.
		api.GET("/events", caching, handler.GetEvents)
		api.GET("/events/:id", caching, handler.GetEvent)
		api.POST("/events/:id/purchases", handler.PurchaseSeats)
		api.GET("/tickets", handler.GetPurchases)

		// Account and city card.
		api.POST("/account/login", handler.Login)
		api.POST("/account/logout", handler.Logout)
		api.GET("/account", handler.GetAccount)
		api.GET("/account/card", handler.GetCard)

		// Map catalog and mock occupancy feed.
		api.GET("/map/zones", caching, handler.GetMapZones)
		api.GET("/map/spots", handler.GetMapSpots)

		// Revenue simulator.
		api.GET("/admin/revenue", handler.GetRevenueEstimate)

		// Push subscriptions for parking reminders.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
