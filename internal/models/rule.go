package models

import "time"

const (
	DirectionIncome  = "income"
	DirectionExpense = "expense"
)

const (
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
	FrequencyYearly   = "yearly"
)

const (
	KindBill     = "bill"
	KindSpending = "spending"
)

// BudgetRule is one version of a recurring commitment (rent, salary,
// subscription). A logical rule may be represented by a chain of rows
// whose StartMonth/EndMonth ranges partition time contiguously; each
// row is independently addressable by ID. Months are zero-padded
// YYYY-MM strings, so string comparison is range comparison.
type BudgetRule struct {
	ID            uint    `gorm:"primaryKey"`
	ProfileID     uint    `gorm:"index;not null"`
	UserID        uint    `gorm:"index;not null"`
	Label         string  `gorm:"size:64;not null"`
	Amount        float64 `gorm:"not null"`
	Direction     string  `gorm:"size:16;index;not null"` // income / expense
	FromAccountID *uint   `gorm:"index"`                  // account the money leaves
	ToAccountID   *uint   `gorm:"index"`                  // account the money lands in (transfers, debt paydown)
	CategoryName  string  `gorm:"size:64"`
	CategoryKind  string  `gorm:"size:16"` // bill / spending, empty = use category lookup
	Notes         string  `gorm:"type:text"`
	Recurring     bool    `gorm:"not null"`
	Frequency     string  `gorm:"size:16"` // weekly / bi-weekly / monthly / yearly
	AnchorDate    string  `gorm:"size:10"` // YYYY-MM-DD, calendar anchor for weekly/bi-weekly/yearly
	StartMonth    string  `gorm:"size:7;index;not null"` // inclusive
	EndMonth      *string `gorm:"size:7;index"`          // inclusive, nil = still active
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
