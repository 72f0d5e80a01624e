package models

import "time"

// Profile is a budget workspace. A user can keep several of them
// (e.g. "Personal", "Shared household") with independent accounts,
// rules and ledger entries.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
