package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
)

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func TestIsRuleActiveInMonth(t *testing.T) {
	open := &models.BudgetRule{StartMonth: "2026-03"}
	assert.False(t, IsRuleActiveInMonth(open, "2026-02"))
	assert.True(t, IsRuleActiveInMonth(open, "2026-03"))
	assert.True(t, IsRuleActiveInMonth(open, "2030-01"))

	closed := &models.BudgetRule{StartMonth: "2026-03", EndMonth: strPtr("2026-06")}
	assert.True(t, IsRuleActiveInMonth(closed, "2026-06"))
	assert.False(t, IsRuleActiveInMonth(closed, "2026-07"))
}

func TestProjection_MidHorizonVersionChange(t *testing.T) {
	account := &models.Account{ID: 1, Type: models.AccountChecking, StartingBalance: 1000}

	// salary versioned mid-year: 5000 Jan-Jun, 6000 Jul-Dec
	rules := []models.BudgetRule{
		{
			Label: "Salary", Amount: 5000, Direction: models.DirectionIncome,
			ToAccountID: uintPtr(1), Recurring: true, Frequency: models.FrequencyMonthly,
			StartMonth: "2026-01", EndMonth: strPtr("2026-06"),
		},
		{
			Label: "Salary", Amount: 6000, Direction: models.DirectionIncome,
			ToAccountID: uintPtr(1), Recurring: true, Frequency: models.FrequencyMonthly,
			StartMonth: "2026-07", EndMonth: strPtr("2026-12"),
		},
	}

	p := CalculateAccountProjection(account, rules, 12, "2026-01")

	// 1000 + 5000*6 + 6000*6
	assert.Equal(t, 67000.0, p.ProjectedBalance)
	assert.Equal(t, 5000.0, p.MonthlyIncome) // current-month snapshot uses the start month
	assert.Equal(t, 12, p.Months)
}

func TestProjection_DebtPaydownActsAsIncome(t *testing.T) {
	checking := &models.Account{ID: 1, Type: models.AccountChecking, StartingBalance: 2000}
	loan := &models.Account{ID: 2, Type: models.AccountLoan, StartingBalance: -5000}

	rules := []models.BudgetRule{
		{
			Label: "Loan payment", Amount: 300, Direction: models.DirectionExpense,
			FromAccountID: uintPtr(1), ToAccountID: uintPtr(2),
			Recurring: true, Frequency: models.FrequencyMonthly, StartMonth: "2026-01",
		},
	}

	loanProj := CalculateAccountProjection(loan, rules, 6, "2026-01")
	assert.Equal(t, 300.0, loanProj.MonthlyIncome)
	assert.Equal(t, 0.0, loanProj.MonthlyExpenses)
	assert.Equal(t, -3200.0, loanProj.ProjectedBalance) // -5000 + 300*6

	checkingProj := CalculateAccountProjection(checking, rules, 6, "2026-01")
	assert.Equal(t, 300.0, checkingProj.MonthlyExpenses)
	assert.Equal(t, 200.0, checkingProj.ProjectedBalance) // 2000 - 300*6
}

func TestProjection_WeeklyRuleVariesByMonth(t *testing.T) {
	account := &models.Account{ID: 1, Type: models.AccountChecking, StartingBalance: 0}

	// Thursday anchor: January 2026 has 5 Thursdays, February has 4
	rules := []models.BudgetRule{
		{
			Label: "Groceries", Amount: 100, Direction: models.DirectionExpense,
			FromAccountID: uintPtr(1), Recurring: true,
			Frequency: models.FrequencyWeekly, AnchorDate: "2026-01-01",
			StartMonth: "2026-01",
		},
	}

	p := CalculateAccountProjection(account, rules, 2, "2026-01")
	assert.Equal(t, -900.0, p.ProjectedBalance) // 5*100 + 4*100
}

func TestCalculateAllProjections_NetWorthPartitions(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Type: models.AccountChecking, StartingBalance: 4000},
		{ID: 2, Type: models.AccountSavings, StartingBalance: 10000},
		{ID: 3, Type: models.AccountLoan, StartingBalance: -6000},
	}

	projections := CalculateAllProjections(accounts, nil, 12, "2026-01")
	assert.Len(t, projections, 3)

	assert.Equal(t, 14000.0, ProjectedAssets(accounts, projections))
	assert.Equal(t, -6000.0, ProjectedLiabilities(accounts, projections))
	assert.Equal(t, 8000.0, ProjectedNetWorth(accounts, projections))
}

func TestProjection_RoundsOutputs(t *testing.T) {
	account := &models.Account{ID: 1, Type: models.AccountChecking, StartingBalance: 0}
	rules := []models.BudgetRule{
		{
			Label: "Thirds", Amount: 10.0 / 3.0, Direction: models.DirectionExpense,
			FromAccountID: uintPtr(1), Recurring: true,
			Frequency: models.FrequencyMonthly, StartMonth: "2026-01",
		},
	}

	p := CalculateAccountProjection(account, rules, 3, "2026-01")
	assert.Equal(t, p.MonthlyExpenses, RoundCurrency(p.MonthlyExpenses))
	assert.Equal(t, p.ProjectedBalance, RoundCurrency(p.ProjectedBalance))
}
