package store

import (
	"time"

	"guestdesk-backend/internal/model"
	"guestdesk-backend/internal/validate"
)

// CheckinRequest is the full input for a check-in operation.
type CheckinRequest struct {
	PropertyID   string               `json:"propertyId"`
	PropertyName string               `json:"propertyName"`
	Data         validate.CheckinData `json:"checkinData"`

	// Force explicitly checks out the previous active booking before the
	// new one is created. Without it, a check-in on an occupied property
	// is rejected.
	Force bool `json:"force"`
}

// StatusView is the result of a property status query.
type StatusView struct {
	PropertyID     string         `json:"propertyId"`
	Status         string         `json:"status"`
	CurrentBooking *model.Booking `json:"currentBooking"`
	LastCheckout   *time.Time     `json:"lastCheckout,omitempty"`
	Version        int64          `json:"version"`
}

// PropertySummary is one row of the per-property roll-up.
type PropertySummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	LastCheckout  *time.Time `json:"lastCheckout,omitempty"`
	TotalBookings int64      `json:"totalBookings"`
}
