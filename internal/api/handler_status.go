package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPropertyStatus handles GET /api/property-status/:propertyId.
func (h *Handler) GetPropertyStatus(c *gin.Context) {
	view, err := h.store.GetPropertyStatus(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         view.Status,
		"currentBooking": view.CurrentBooking,
		"lastCheckout":   view.LastCheckout,
		"version":        view.Version,
	})
}

// GetCurrentBooking handles GET /api/booking/:propertyId. The booking is
// null when the property has no active stay.
func (h *Handler) GetCurrentBooking(c *gin.Context) {
	booking, err := h.store.CurrentBooking(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GetBookingHistory handles GET /api/bookings/:propertyId, most recent
// check-in first.
func (h *Handler) GetBookingHistory(c *gin.Context) {
	bookings, err := h.store.ListBookings(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetProperties handles GET /api/properties: a status roll-up of every
// property the tracker has seen.
func (h *Handler) GetProperties(c *gin.Context) {
	summaries, err := h.store.ListProperties(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": summaries})
}
