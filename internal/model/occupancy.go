package model

import "time"

// Property occupancy states.
const (
	StatusVacant        = "vacant"
	StatusOccupied      = "occupied"
	StatusNeedsCleaning = "needs_cleaning"
)

// PropertyStatus is the current occupancy record for a property (hot row).
// A property with no row is vacant. Version is the optimistic-concurrency
// token: every transition runs as a guarded update on it.
type PropertyStatus struct {
	PropertyID       string    `gorm:"primaryKey;size:128"`
	Status           string    `gorm:"size:32;not null"`
	CurrentBookingID *string   `gorm:"size:64"`
	LastCheckoutTime *time.Time
	LastRemindedAt   *time.Time
	Version          int64     `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// LedgerEntry is one append-only history row: a booking id recorded for a
// property at check-in (cold table). Insertion order is check-in order.
type LedgerEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	PropertyID string    `gorm:"index;size:128;not null"`
	BookingID  string    `gorm:"size:64;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}
