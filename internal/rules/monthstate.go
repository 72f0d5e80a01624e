package rules

import (
	"github.com/JeremyMColegrove/budgetr-sub000/internal/engine"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"

	"gorm.io/gorm"
)

// BillState is the month view of a fixed bill: one expected posting.
type BillState struct {
	RuleID   uint    `json:"rule_id"`
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Planned  float64 `json:"planned"`
	Actual   float64 `json:"actual"`
	Paid     bool    `json:"paid"`
}

// SpendingState is the month view of a variable spending envelope:
// many small postings against one planned amount.
type SpendingState struct {
	RuleID       uint    `json:"rule_id"`
	Label        string  `json:"label"`
	Category     string  `json:"category"`
	Planned      float64 `json:"planned"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Transactions int     `json:"transactions"`
}

// MonthSummaryState is the profile-level rollup for the month.
type MonthSummaryState struct {
	Income              float64 `json:"income"`
	TotalPlannedExpense float64 `json:"total_planned_expense"`
	TotalSpent          float64 `json:"total_spent"`
	SafeToSpend         float64 `json:"safe_to_spend"`
}

// MonthlyState is the UI-ready object for one profile/month pair.
type MonthlyState struct {
	Month    string            `json:"month"`
	Summary  MonthSummaryState `json:"summary"`
	Bills    []BillState       `json:"bills"`
	Spending []SpendingState   `json:"spending"`
}

// ResolveMonthlyState merges the month's active rules, its ledger
// entries and the user's category classification into a bills/spending
// breakdown.
//
// A bill is "paid" as soon as any posting exists against it, not when
// the posted sum covers the planned amount; the reported actual is the
// sum of its postings. Spending rules sum every posting too, but also
// report the remaining envelope and a transaction count.
//
// Safe-to-spend reserves the planned amounts of unpaid bills on top of
// what was actually spent; paid bills are already inside the
// actual-spent total and are not reserved twice.
func ResolveMonthlyState(db *gorm.DB, profileID uint, month string, userID uint) (*MonthlyState, error) {
	manager := NewManager(db, profileID, userID)
	ruleSet, err := manager.RulesForMonth(month)
	if err != nil {
		return nil, err
	}

	var entries []models.LedgerEntry
	err = db.
		Where("profile_id = ? AND user_id = ? AND month = ?", profileID, userID, month).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}
	kindByName := make(map[string]string, len(categories))
	for i := range categories {
		kindByName[categories[i].Name] = categories[i].Kind
	}

	entriesByRule := make(map[uint][]models.LedgerEntry)
	var totalSpent float64
	for i := range entries {
		entriesByRule[entries[i].RuleID] = append(entriesByRule[entries[i].RuleID], entries[i])
		totalSpent += entries[i].Amount
	}

	state := &MonthlyState{
		Month:    month,
		Bills:    []BillState{},
		Spending: []SpendingState{},
	}

	var income, plannedExpense, unpaidBills float64
	for i := range ruleSet {
		rule := &ruleSet[i]
		planned := engine.PlannedAmountForMonth(rule, month)

		if rule.Direction == models.DirectionIncome {
			income += planned
			continue
		}
		plannedExpense += planned

		kind := rule.CategoryKind
		if kind == "" {
			kind = kindByName[rule.CategoryName]
		}
		if kind == "" {
			kind = models.KindSpending
		}

		postings := entriesByRule[rule.ID]

		if kind == models.KindBill {
			bill := BillState{
				RuleID:   rule.ID,
				Label:    rule.Label,
				Category: rule.CategoryName,
				Planned:  engine.RoundCurrency(planned),
				Paid:     len(postings) > 0,
			}
			if len(postings) > 0 {
				var actual float64
				for j := range postings {
					actual += postings[j].Amount
				}
				bill.Actual = engine.RoundCurrency(actual)
			} else {
				unpaidBills += planned
			}
			state.Bills = append(state.Bills, bill)
			continue
		}

		var spent float64
		for j := range postings {
			spent += postings[j].Amount
		}
		state.Spending = append(state.Spending, SpendingState{
			RuleID:       rule.ID,
			Label:        rule.Label,
			Category:     rule.CategoryName,
			Planned:      engine.RoundCurrency(planned),
			Spent:        engine.RoundCurrency(spent),
			Remaining:    engine.RoundCurrency(planned - spent),
			Transactions: len(postings),
		})
	}

	state.Summary = MonthSummaryState{
		Income:              engine.RoundCurrency(income),
		TotalPlannedExpense: engine.RoundCurrency(plannedExpense),
		TotalSpent:          engine.RoundCurrency(totalSpent),
		SafeToSpend:         engine.RoundCurrency(income - (totalSpent + unpaidBills)),
	}
	return state, nil
}
