package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
)

func seedManagerFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Salary", Amount: 5000, Direction: models.DirectionIncome,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base)

	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Rent", Amount: 1500, Direction: models.DirectionExpense,
		CategoryName: "Housing", CategoryKind: models.KindBill,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base.Add(time.Minute))

	// weekly Thursday anchor: 4 occurrences in February 2026
	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Groceries", Amount: 100, Direction: models.DirectionExpense,
		CategoryName: "Food", CategoryKind: models.KindSpending,
		Recurring: true, Frequency: models.FrequencyWeekly, AnchorDate: "2026-01-15",
		StartMonth: "2026-01",
	}, base.Add(2*time.Minute))

	// closed before the queried months, must never surface
	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Old gym", Amount: 40, Direction: models.DirectionExpense,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2025-01", EndMonth: strPtr("2025-12"),
	}, base.Add(3*time.Minute))
}

func TestRulesForMonth_OrderAndRange(t *testing.T) {
	db := newTestDB(t)
	seedManagerFixture(t, db)
	manager := NewManager(db, testProfileID, testUserID)

	active, err := manager.RulesForMonth("2026-02")
	require.NoError(t, err)
	require.Len(t, active, 3)

	// stable display order = creation time
	assert.Equal(t, "Salary", active[0].Label)
	assert.Equal(t, "Rent", active[1].Label)
	assert.Equal(t, "Groceries", active[2].Label)
}

func TestApproximateTotals(t *testing.T) {
	db := newTestDB(t)
	seedManagerFixture(t, db)
	manager := NewManager(db, testProfileID, testUserID)

	income, err := manager.TotalIncome("2026-02")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, income)

	// rent 1500 + groceries 100*4.33
	expenses, err := manager.TotalExpenses("2026-02")
	require.NoError(t, err)
	assert.Equal(t, 1933.0, expenses)

	left, err := manager.AmountLeftToAllocate("2026-02")
	require.NoError(t, err)
	assert.Equal(t, 3067.0, left)
}

func TestMonthSummary_ExactPath(t *testing.T) {
	db := newTestDB(t)
	seedManagerFixture(t, db)
	manager := NewManager(db, testProfileID, testUserID)

	var groceries models.BudgetRule
	require.NoError(t, db.Where("label = ?", "Groceries").First(&groceries).Error)
	var salary models.BudgetRule
	require.NoError(t, db.Where("label = ?", "Salary").First(&salary).Error)

	// actual postings: two grocery trips in February
	for _, amount := range []float64{62.50, 41.25} {
		require.NoError(t, db.Create(&models.LedgerEntry{
			ProfileID: testProfileID, UserID: testUserID,
			Month: "2026-02", RuleID: groceries.ID, Amount: amount, Date: "2026-02-05",
		}).Error)
	}
	// income postings must not count toward actual expense
	require.NoError(t, db.Create(&models.LedgerEntry{
		ProfileID: testProfileID, UserID: testUserID,
		Month: "2026-02", RuleID: salary.ID, Amount: 5000, Date: "2026-02-01",
	}).Error)

	summary, err := manager.MonthSummary("2026-02")
	require.NoError(t, err)

	assert.Equal(t, 5000.0, summary.TotalIncome)
	// exact path: rent 1500 + groceries 4*100, not the 4.33 multiplier
	assert.Equal(t, 1900.0, summary.TotalPlannedExpense)
	assert.Equal(t, 103.75, summary.TotalActualExpense)
}

func TestManager_ScopedToProfile(t *testing.T) {
	db := newTestDB(t)
	seedManagerFixture(t, db)

	other := NewManager(db, 99, testUserID)
	active, err := other.RulesForMonth("2026-02")
	require.NoError(t, err)
	assert.Len(t, active, 0)
}
