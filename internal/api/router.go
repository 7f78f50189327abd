package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"guestdesk-backend/config"
	"guestdesk-backend/internal/mw"
	"guestdesk-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options, notifier Dispatcher) *gin.Engine {
	r := gin.Default()

	limit := rate.Limit(cfg.RateLimitPerSec)
	if limit <= 0 {
		limit = rate.Limit(10)
	}
	burst := int(limit)
	if burst < 5 {
		burst = 5
	}
	rateLimiter := mw.RateLimiter(limit, burst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	// Write handlers flush this on every state transition.
	cacheStore := cache.New(cacheTTL, 5*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	handler := NewHandler(s, webpushOptions, notifier, cacheStore)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/checkin", handler.PostCheckin)
		api.POST("/checkout", handler.PostCheckout)
		api.PUT("/property/:propertyId/cleaned", handler.PutCleaned)

		api.GET("/booking/:propertyId", handler.GetCurrentBooking)
		api.GET("/property-status/:propertyId", handler.GetPropertyStatus)
		api.GET("/bookings/:propertyId", handler.GetBookingHistory)
		api.GET("/properties", caching, handler.GetProperties)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
