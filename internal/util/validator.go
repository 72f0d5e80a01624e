package util

import (
	"fmt"
	"time"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
)

// ValidateAmount checks that an amount is positive and below a sane cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month string.
func ValidateMonth(month string) error {
	if month == "" {
		return fmt.Errorf("month is empty")
	}
	if !ValidMonth(month) {
		return fmt.Errorf("invalid month format %q, want YYYY-MM", month)
	}
	return nil
}

// ValidateFrequency checks a recurrence frequency value.
func ValidateFrequency(freq string) error {
	switch freq {
	case models.FrequencyWeekly, models.FrequencyBiWeekly, models.FrequencyMonthly, models.FrequencyYearly:
		return nil
	}
	return fmt.Errorf("invalid frequency %q", freq)
}

// ValidateAccountType checks an account type value.
func ValidateAccountType(accountType string) error {
	switch accountType {
	case models.AccountChecking, models.AccountSavings, models.AccountCash,
		models.AccountInvestment, models.AccountCreditCard, models.AccountLoan:
		return nil
	}
	return fmt.Errorf("invalid account type %q", accountType)
}
