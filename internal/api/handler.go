package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"guestdesk-backend/internal/store"
)

// Dispatcher queues a cleaning notification for a property.
type Dispatcher interface {
	Dispatch(propertyID string)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	notifier Dispatcher
	cache    *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, webpushOptions *webpush.Options, notifier Dispatcher, cacheStore *cache.Cache) *Handler {
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
		cache:    cacheStore,
	}
}

// flushCache drops all cached GET responses so status reads can never serve
// a pre-transition snapshot.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// fail translates a store error into the JSON error envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNoActiveBooking), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyOccupied), errors.Is(err, store.ErrVersionConflict):
		status = http.StatusConflict
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
