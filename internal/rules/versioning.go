// Package rules implements the temporal rule engine: month-grain rule
// versioning, planned/actual aggregation and monthly state resolution
// over the SQL store.
package rules

import (
	"errors"
	"time"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"

	"gorm.io/gorm"
)

// ErrRuleNotFound is returned when a rule id does not exist within the
// caller's scope.
var ErrRuleNotFound = errors.New("budget rule not found")

// RuleUpdates carries the fields of an edit. Nil fields are left
// untouched; set fields are merged over the existing row (in-place
// update) or over the cloned successor (split).
type RuleUpdates struct {
	Label         *string
	Amount        *float64
	Direction     *string
	FromAccountID *uint
	ToAccountID   *uint
	CategoryName  *string
	CategoryKind  *string
	Notes         *string
	Recurring     *bool
	Frequency     *string
	AnchorDate    *string
}

func (u RuleUpdates) applyTo(rule *models.BudgetRule) {
	if u.Label != nil {
		rule.Label = *u.Label
	}
	if u.Amount != nil {
		rule.Amount = *u.Amount
	}
	if u.Direction != nil {
		rule.Direction = *u.Direction
	}
	if u.FromAccountID != nil {
		rule.FromAccountID = u.FromAccountID
	}
	if u.ToAccountID != nil {
		rule.ToAccountID = u.ToAccountID
	}
	if u.CategoryName != nil {
		rule.CategoryName = *u.CategoryName
	}
	if u.CategoryKind != nil {
		rule.CategoryKind = *u.CategoryKind
	}
	if u.Notes != nil {
		rule.Notes = *u.Notes
	}
	if u.Recurring != nil {
		rule.Recurring = *u.Recurring
	}
	if u.Frequency != nil {
		rule.Frequency = *u.Frequency
	}
	if u.AnchorDate != nil {
		rule.AnchorDate = *u.AnchorDate
	}
}

func findRule(db *gorm.DB, ruleID, userID uint) (*models.BudgetRule, error) {
	var rule models.BudgetRule
	if err := db.Where("id = ? AND user_id = ?", ruleID, userID).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// UpsertRule applies an edit to a rule and returns the row that now
// governs currentViewMonth.
//
// If the rule started in the month being viewed it has not gone live
// anywhere else, so the edit is an immediate correction: the row is
// updated in place and applying the same edit twice still yields one
// row. Any other view month splits the rule: the old row is closed at
// the month before the view, and an open-ended successor starting at
// the view month carries the updates merged over the old fields. Both
// writes run in one transaction so no reader observes a gap or an
// overlap in the chain.
func UpsertRule(db *gorm.DB, ruleID uint, updates RuleUpdates, currentViewMonth string, userID uint) (*models.BudgetRule, error) {
	rule, err := findRule(db, ruleID, userID)
	if err != nil {
		return nil, err
	}

	if rule.StartMonth == currentViewMonth {
		updates.applyTo(rule)
		if err := db.Save(rule).Error; err != nil {
			return nil, err
		}
		return rule, nil
	}

	successor := *rule
	successor.ID = 0
	successor.StartMonth = currentViewMonth
	successor.EndMonth = nil
	successor.CreatedAt = time.Time{}
	successor.UpdatedAt = time.Time{}
	updates.applyTo(&successor)

	closeAt := util.MonthBefore(currentViewMonth)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BudgetRule{}).
			Where("id = ?", rule.ID).
			Update("end_month", closeAt).Error; err != nil {
			return err
		}
		return tx.Create(&successor).Error
	})
	if err != nil {
		return nil, err
	}
	return &successor, nil
}

// SoftDeleteRule stops the rule from currentViewMonth onward by closing
// it at the preceding month; every prior month keeps its history. A
// rule soft-deleted in its own start month never governed any month, so
// the row is removed outright instead of being left with an inverted
// range.
func SoftDeleteRule(db *gorm.DB, ruleID uint, currentViewMonth string, userID uint) error {
	rule, err := findRule(db, ruleID, userID)
	if err != nil {
		return err
	}

	closeAt := util.MonthBefore(currentViewMonth)
	if closeAt < rule.StartMonth {
		return HardDeleteRule(db, ruleID, userID)
	}

	return db.Model(&models.BudgetRule{}).
		Where("id = ?", rule.ID).
		Update("end_month", closeAt).Error
}

// HardDeleteRule physically removes the rule and its ledger entries.
// Used for full cleanup (e.g. discarding a duplicated profile on
// rollback), not user-facing deletion. Safe to call on a missing id.
func HardDeleteRule(db *gorm.DB, ruleID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ? AND user_id = ?", ruleID, userID).
			Delete(&models.LedgerEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", ruleID, userID).
			Delete(&models.BudgetRule{}).Error
	})
}
