package rules

import (
	"github.com/JeremyMColegrove/budgetr-sub000/internal/engine"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"

	"gorm.io/gorm"
)

// Manager is the read-side query facade for one profile's rules.
type Manager struct {
	db        *gorm.DB
	profileID uint
	userID    uint
}

func NewManager(db *gorm.DB, profileID, userID uint) *Manager {
	return &Manager{db: db, profileID: profileID, userID: userID}
}

// RulesForMonth returns the rule versions active in the given month in
// stable display order (creation time).
func (m *Manager) RulesForMonth(month string) ([]models.BudgetRule, error) {
	var ruleSet []models.BudgetRule
	err := m.db.
		Where("profile_id = ? AND user_id = ?", m.profileID, m.userID).
		Where("start_month <= ? AND (end_month IS NULL OR end_month >= ?)", month, month).
		Order("created_at ASC").
		Find(&ruleSet).Error
	if err != nil {
		return nil, err
	}
	return ruleSet, nil
}

// TotalIncome sums the approximate monthly income for the month's
// active rules. Approximate means the fixed frequency multipliers, not
// calendar-exact amounts; use MonthSummary for the exact figures.
func (m *Manager) TotalIncome(month string) (float64, error) {
	return m.sumNormalized(month, models.DirectionIncome)
}

// TotalExpenses is the approximate-path counterpart of TotalIncome.
func (m *Manager) TotalExpenses(month string) (float64, error) {
	return m.sumNormalized(month, models.DirectionExpense)
}

// AmountLeftToAllocate is the rough "left to allocate" dial: average
// income minus average expenses.
func (m *Manager) AmountLeftToAllocate(month string) (float64, error) {
	income, err := m.TotalIncome(month)
	if err != nil {
		return 0, err
	}
	expenses, err := m.TotalExpenses(month)
	if err != nil {
		return 0, err
	}
	return engine.RoundCurrency(income - expenses), nil
}

func (m *Manager) sumNormalized(month, direction string) (float64, error) {
	ruleSet, err := m.RulesForMonth(month)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range ruleSet {
		if ruleSet[i].Direction == direction {
			total += engine.NormalizeToMonthly(&ruleSet[i])
		}
	}
	return engine.RoundCurrency(total), nil
}

// MonthSummary holds the exact totals for one specific month.
type MonthSummary struct {
	TotalIncome         float64 `json:"total_income"`
	TotalPlannedExpense float64 `json:"total_planned_expense"`
	TotalActualExpense  float64 `json:"total_actual_expense"`
}

// MonthSummary aggregates the calendar-exact planned amounts for the
// month plus the actual ledger amounts posted against expense rules.
// This is the exact path: it answers "what is true for this month",
// where TotalIncome/TotalExpenses answer "what happens per month on
// average".
func (m *Manager) MonthSummary(month string) (*MonthSummary, error) {
	ruleSet, err := m.RulesForMonth(month)
	if err != nil {
		return nil, err
	}

	var income, planned float64
	for i := range ruleSet {
		rule := &ruleSet[i]
		amount := engine.PlannedAmountForMonth(rule, month)
		switch rule.Direction {
		case models.DirectionIncome:
			income += amount
		case models.DirectionExpense:
			planned += amount
		}
	}

	var actual float64
	err = m.db.Model(&models.LedgerEntry{}).
		Joins("JOIN budget_rules ON budget_rules.id = ledger_entries.rule_id").
		Where("ledger_entries.profile_id = ? AND ledger_entries.month = ?", m.profileID, month).
		Where("budget_rules.direction = ?", models.DirectionExpense).
		Select("COALESCE(SUM(ledger_entries.amount), 0)").
		Scan(&actual).Error
	if err != nil {
		return nil, err
	}

	return &MonthSummary{
		TotalIncome:         engine.RoundCurrency(income),
		TotalPlannedExpense: engine.RoundCurrency(planned),
		TotalActualExpense:  engine.RoundCurrency(actual),
	}, nil
}
