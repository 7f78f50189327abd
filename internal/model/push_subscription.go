package model

import "time"

// PushSubscription holds a host's browser push subscription. A subscription
// is notified when any of its properties needs cleaning.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Properties []*Property `gorm:"many2many:subscription_property_mapping;"`
}
