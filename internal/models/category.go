package models

import "time"

// Category is a per-user name→kind lookup. It is only consulted as a
// fallback when a rule does not carry an explicit classification.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;not null"`
	Kind      string `gorm:"size:16;not null"` // bill / spending
	CreatedAt time.Time
	UpdatedAt time.Time
}
