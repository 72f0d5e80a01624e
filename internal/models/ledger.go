package models

import "time"

// LedgerEntry is an actual posting against a budget rule version:
// a bill marked paid or a logged transaction. Several entries may
// reference the same rule+month (e.g. multiple grocery trips).
type LedgerEntry struct {
	ID        uint    `gorm:"primaryKey"`
	ProfileID uint    `gorm:"index;not null"`
	UserID    uint    `gorm:"index;not null"`
	Month     string  `gorm:"size:7;index;not null"` // YYYY-MM the posting belongs to
	RuleID    uint    `gorm:"index;not null"`
	Amount    float64 `gorm:"not null"`
	Date      string  `gorm:"size:10"` // YYYY-MM-DD
	Notes     string  `gorm:"size:255"`
	CreatedAt time.Time

	Rule BudgetRule `gorm:"constraint:OnDelete:CASCADE"`
}
