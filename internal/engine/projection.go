package engine

import (
	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"
)

// AccountProjection is the forward balance trajectory for one account.
type AccountProjection struct {
	AccountID        uint    `json:"account_id"`
	StartingBalance  float64 `json:"starting_balance"`
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	MonthlyNet       float64 `json:"monthly_net"`
	ProjectedBalance float64 `json:"projected_balance"`
	Months           int     `json:"months"`
}

// IsRuleActiveInMonth reports whether the rule version governs the
// given month. Zero-padded YYYY-MM strings make string comparison a
// valid range check.
func IsRuleActiveInMonth(rule *models.BudgetRule, month string) bool {
	if rule.StartMonth > month {
		return false
	}
	return rule.EndMonth == nil || *rule.EndMonth >= month
}

// MonthlyIncomeForAccount sums the planned amounts of rules active in
// the month whose destination is the account. That includes expense
// direction transfers: paying down a loan is an expense from the paying
// account but acts as income to the loan account, whose balance is
// stored negative.
func MonthlyIncomeForAccount(account *models.Account, rules []models.BudgetRule, month string) float64 {
	var total float64
	for i := range rules {
		rule := &rules[i]
		if !IsRuleActiveInMonth(rule, month) {
			continue
		}
		if rule.ToAccountID != nil && *rule.ToAccountID == account.ID {
			total += PlannedAmountForMonth(rule, month)
		}
	}
	return total
}

// MonthlyExpensesForAccount sums the planned amounts of expense rules
// active in the month whose source is the account.
func MonthlyExpensesForAccount(account *models.Account, rules []models.BudgetRule, month string) float64 {
	var total float64
	for i := range rules {
		rule := &rules[i]
		if !IsRuleActiveInMonth(rule, month) {
			continue
		}
		if rule.Direction != models.DirectionExpense {
			continue
		}
		if rule.FromAccountID != nil && *rule.FromAccountID == account.ID {
			total += PlannedAmountForMonth(rule, month)
		}
	}
	return total
}

// CalculateAccountProjection walks month by month from startMonth,
// re-evaluating which rule versions are active each month and
// accumulating their net onto the starting balance. The walk (rather
// than a closed-form multiply) matters because versioned rules start
// and stop inside the horizon.
func CalculateAccountProjection(account *models.Account, rules []models.BudgetRule, months int, startMonth string) AccountProjection {
	income := MonthlyIncomeForAccount(account, rules, startMonth)
	expenses := MonthlyExpensesForAccount(account, rules, startMonth)

	balance := account.StartingBalance
	for i := 0; i < months; i++ {
		m := util.AddMonths(startMonth, i)
		balance += MonthlyIncomeForAccount(account, rules, m) - MonthlyExpensesForAccount(account, rules, m)
	}

	return AccountProjection{
		AccountID:        account.ID,
		StartingBalance:  RoundCurrency(account.StartingBalance),
		MonthlyIncome:    RoundCurrency(income),
		MonthlyExpenses:  RoundCurrency(expenses),
		MonthlyNet:       RoundCurrency(income - expenses),
		ProjectedBalance: RoundCurrency(balance),
		Months:           months,
	}
}

// CalculateAllProjections maps CalculateAccountProjection over every
// account, keyed by account id.
func CalculateAllProjections(accounts []models.Account, rules []models.BudgetRule, months int, startMonth string) map[uint]AccountProjection {
	projections := make(map[uint]AccountProjection, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		projections[account.ID] = CalculateAccountProjection(account, rules, months, startMonth)
	}
	return projections
}

// ProjectedAssets sums the projected balances of asset accounts.
func ProjectedAssets(accounts []models.Account, projections map[uint]AccountProjection) float64 {
	var total float64
	for i := range accounts {
		if !models.IsAssetType(accounts[i].Type) {
			continue
		}
		if p, ok := projections[accounts[i].ID]; ok {
			total += p.ProjectedBalance
		}
	}
	return RoundCurrency(total)
}

// ProjectedLiabilities sums the projected balances of liability
// accounts. Liabilities are stored negative, so the sum is negative.
func ProjectedLiabilities(accounts []models.Account, projections map[uint]AccountProjection) float64 {
	var total float64
	for i := range accounts {
		if models.IsAssetType(accounts[i].Type) {
			continue
		}
		if p, ok := projections[accounts[i].ID]; ok {
			total += p.ProjectedBalance
		}
	}
	return RoundCurrency(total)
}

// ProjectedNetWorth sums all projected balances.
func ProjectedNetWorth(accounts []models.Account, projections map[uint]AccountProjection) float64 {
	var total float64
	for i := range accounts {
		if p, ok := projections[accounts[i].ID]; ok {
			total += p.ProjectedBalance
		}
	}
	return RoundCurrency(total)
}
