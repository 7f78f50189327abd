package model

import "time"

// Booking status values.
const (
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
)

// Booking is one guest stay. Created at check-in, mutated exactly once at
// check-out, never deleted.
type Booking struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	PropertyID     string     `gorm:"index;size:128;not null" json:"propertyId"`
	PropertyName   string     `gorm:"size:256" json:"propertyName"`
	FirstName      string     `gorm:"size:128;not null" json:"firstName"`
	LastName       string     `gorm:"size:128;not null" json:"lastName"`
	Email          string     `gorm:"size:256;not null" json:"email"`
	Phone          string     `gorm:"size:64;not null" json:"phone"`
	StreetAddress  string     `gorm:"size:256;not null" json:"streetAddress"`
	PostalCode     string     `gorm:"size:32;not null" json:"postalCode"`
	City           string     `gorm:"size:128;not null" json:"city"`
	Country        string     `gorm:"size:128;not null" json:"country"`
	NumberOfGuests int        `gorm:"not null" json:"numberOfGuests"`
	ArrivalDate    string     `gorm:"size:32;not null" json:"arrivalDate"`
	DepartureDate  string     `gorm:"size:32;not null" json:"departureDate"`
	Comments       string     `gorm:"type:text" json:"comments,omitempty"`
	CheckinTime    time.Time  `gorm:"not null;index" json:"checkinTime"`
	CheckoutTime   *time.Time `json:"checkoutTime,omitempty"`
	Status         string     `gorm:"size:32;not null" json:"status"`
}
