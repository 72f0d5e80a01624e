package models

import "time"

// Account types. Liability accounts carry negative balances so that
// all signed arithmetic composes without special-casing.
const (
	AccountChecking   = "checking"
	AccountSavings    = "savings"
	AccountCash       = "cash"
	AccountInvestment = "investment"
	AccountCreditCard = "credit_card"
	AccountLoan       = "loan"
)

// IsAssetType reports whether the account type counts toward assets
// (as opposed to liabilities) in net-worth rollups.
func IsAssetType(accountType string) bool {
	switch accountType {
	case AccountChecking, AccountSavings, AccountCash, AccountInvestment:
		return true
	}
	return false
}

// Account holds a base starting balance, not a ledger-derived figure.
type Account struct {
	ID              uint    `gorm:"primaryKey"`
	ProfileID       uint    `gorm:"index;not null"`
	Name            string  `gorm:"size:64;not null"`
	Type            string  `gorm:"size:16;not null"`
	StartingBalance float64 `gorm:"not null"` // liabilities stored negative
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
