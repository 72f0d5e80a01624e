package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
)

func TestResolveMonthlyState_BillAggregation(t *testing.T) {
	db := newTestDB(t)

	bill := seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Utilities", Amount: 1000, Direction: models.DirectionExpense,
		CategoryName: "Home", CategoryKind: models.KindBill,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, time.Now())

	for _, amount := range []float64{400, 500, 200} {
		require.NoError(t, db.Create(&models.LedgerEntry{
			ProfileID: testProfileID, UserID: testUserID,
			Month: "2026-02", RuleID: bill.ID, Amount: amount, Date: "2026-02-10",
		}).Error)
	}

	state, err := ResolveMonthlyState(db, testProfileID, "2026-02", testUserID)
	require.NoError(t, err)

	require.Len(t, state.Bills, 1)
	got := state.Bills[0]
	assert.Equal(t, 1000.0, got.Planned)
	assert.Equal(t, 1100.0, got.Actual)
	// paid means "any posting exists", not "posted sum covers planned"
	assert.True(t, got.Paid)
}

func TestResolveMonthlyState_SpendingAndSummary(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Salary", Amount: 3000, Direction: models.DirectionIncome,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base)

	rent := seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Rent", Amount: 1000, Direction: models.DirectionExpense,
		CategoryName: "Housing", CategoryKind: models.KindBill,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base.Add(time.Minute))

	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Internet", Amount: 50, Direction: models.DirectionExpense,
		CategoryName: "Home", CategoryKind: models.KindBill,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base.Add(2*time.Minute))

	groceries := seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Groceries", Amount: 400, Direction: models.DirectionExpense,
		CategoryName: "Food", CategoryKind: models.KindSpending,
		Recurring: true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, base.Add(3*time.Minute))

	// rent paid, internet not, two grocery trips
	require.NoError(t, db.Create(&models.LedgerEntry{
		ProfileID: testProfileID, UserID: testUserID,
		Month: "2026-03", RuleID: rent.ID, Amount: 1000, Date: "2026-03-01",
	}).Error)
	for _, amount := range []float64{70, 50} {
		require.NoError(t, db.Create(&models.LedgerEntry{
			ProfileID: testProfileID, UserID: testUserID,
			Month: "2026-03", RuleID: groceries.ID, Amount: amount, Date: "2026-03-08",
		}).Error)
	}

	state, err := ResolveMonthlyState(db, testProfileID, "2026-03", testUserID)
	require.NoError(t, err)

	require.Len(t, state.Bills, 2)
	require.Len(t, state.Spending, 1)

	spending := state.Spending[0]
	assert.Equal(t, 400.0, spending.Planned)
	assert.Equal(t, 120.0, spending.Spent)
	assert.Equal(t, 280.0, spending.Remaining)
	assert.Equal(t, 2, spending.Transactions)

	assert.Equal(t, 3000.0, state.Summary.Income)
	assert.Equal(t, 1450.0, state.Summary.TotalPlannedExpense)
	assert.Equal(t, 1120.0, state.Summary.TotalSpent)
	// unpaid internet (50) is reserved; paid rent flows through
	// TotalSpent and is not double-counted
	assert.Equal(t, 1830.0, state.Summary.SafeToSpend) // 3000 - (1120 + 50)
}

func TestResolveMonthlyState_CategoryFallback(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Category{
		UserID: testUserID, Name: "Insurance", Kind: models.KindBill,
	}).Error)

	// no kind on the rule: the category lookup classifies it
	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Car insurance", Amount: 80, Direction: models.DirectionExpense,
		CategoryName: "Insurance",
		Recurring:    true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, time.Now())

	// unknown category name: defaults to spending
	seedRule(t, db, &models.BudgetRule{
		ProfileID: testProfileID, UserID: testUserID,
		Label: "Misc", Amount: 60, Direction: models.DirectionExpense,
		CategoryName: "Whatever",
		Recurring:    true, Frequency: models.FrequencyMonthly,
		StartMonth: "2026-01",
	}, time.Now().Add(time.Minute))

	state, err := ResolveMonthlyState(db, testProfileID, "2026-02", testUserID)
	require.NoError(t, err)

	require.Len(t, state.Bills, 1)
	assert.Equal(t, "Car insurance", state.Bills[0].Label)
	require.Len(t, state.Spending, 1)
	assert.Equal(t, "Misc", state.Spending[0].Label)
}

func TestResolveMonthlyState_EmptyMonth(t *testing.T) {
	db := newTestDB(t)

	state, err := ResolveMonthlyState(db, testProfileID, "2026-02", testUserID)
	require.NoError(t, err)

	assert.Equal(t, "2026-02", state.Month)
	assert.Empty(t, state.Bills)
	assert.Empty(t, state.Spending)
	assert.Equal(t, 0.0, state.Summary.SafeToSpend)
}
