package model

import "time"

// Property holds the display metadata for a rental property. Rows are
// upserted from check-in requests; the guest app is the source of truth
// for the name.
type Property struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
