package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/internal/store"
)

// PostCheckin handles POST /api/checkin: records the booking and marks the
// property occupied.
func (h *Handler) PostCheckin(c *gin.Context) {
	var req store.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

type checkoutRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Version    *int64 `json:"version"`
}

// PostCheckout handles POST /api/checkout: closes the active booking, moves
// the property to needs_cleaning, and queues a cleaning notification for
// the host.
func (h *Handler) PostCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.CheckOut(c.Request.Context(), req.PropertyID, req.Version)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.flushCache()
	if h.notifier != nil {
		h.notifier.Dispatch(req.PropertyID)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

type markCleanedRequest struct {
	Version *int64 `json:"version"`
}

// PutCleaned handles PUT /api/property/:propertyId/cleaned: resets the
// property to vacant. The body is optional and may carry the version token
// the caller last read.
func (h *Handler) PutCleaned(c *gin.Context) {
	var req markCleanedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.store.MarkCleaned(c.Request.Context(), c.Param("propertyId"), req.Version); err != nil {
		h.fail(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
