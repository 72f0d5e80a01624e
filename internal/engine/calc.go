// Package engine holds the pure calculation core: frequency
// normalization, calendar-accurate occurrence counting and forward
// balance projection. Nothing in this package touches the database.
package engine

import (
	"math"
	"time"

	"github.com/JeremyMColegrove/budgetr-sub000/internal/models"
	"github.com/JeremyMColegrove/budgetr-sub000/internal/util"
)

// Average occurrences of a pay period per calendar month. These feed
// the approximate "per month on average" aggregates only; month-exact
// totals go through PlannedAmountForMonth instead.
const (
	weeklyPerMonth   = 4.33
	biWeeklyPerMonth = 2.17
)

// NormalizeToMonthly converts a rule's raw amount to an approximate
// monthly figure. Non-recurring rules pass through unchanged.
func NormalizeToMonthly(rule *models.BudgetRule) float64 {
	if !rule.Recurring {
		return rule.Amount
	}
	switch rule.Frequency {
	case models.FrequencyWeekly:
		return rule.Amount * weeklyPerMonth
	case models.FrequencyBiWeekly:
		return rule.Amount * biWeeklyPerMonth
	case models.FrequencyYearly:
		return rule.Amount / 12
	default:
		// monthly, or recurring with no frequency set
		return rule.Amount
	}
}

// PlannedAmountForMonth returns the calendar-accurate amount a rule
// contributes to one specific month.
//
// Non-recurring rules return their raw amount for whichever month is
// queried; callers restrict queries to the rule's active range, and a
// one-time rule is closed in its start month at creation, so its
// active range is exactly one month.
func PlannedAmountForMonth(rule *models.BudgetRule, month string) float64 {
	if !rule.Recurring {
		return rule.Amount
	}

	switch rule.Frequency {
	case models.FrequencyMonthly:
		return rule.Amount
	case models.FrequencyYearly:
		// fires only in the anchor's calendar month
		anchor := rule.AnchorDate
		if anchor == "" {
			anchor = rule.StartMonth + "-01"
		}
		if len(anchor) >= 7 && len(month) == 7 && anchor[5:7] == month[5:7] {
			return rule.Amount
		}
		return 0
	case models.FrequencyWeekly, models.FrequencyBiWeekly:
		interval := 7
		if rule.Frequency == models.FrequencyBiWeekly {
			interval = 14
		}
		year, m, err := util.SplitMonth(month)
		if err != nil {
			return 0
		}
		anchor := rule.AnchorDate
		if anchor == "" {
			anchor = rule.StartMonth + "-01"
		}
		count := CountOccurrencesInMonth(anchor, year, m, interval)
		return rule.Amount * float64(count)
	default:
		return rule.Amount
	}
}

// dayNumber converts a calendar date to an integer day count since the
// Unix epoch.
func dayNumber(t time.Time) int {
	return int(t.Unix() / 86400)
}

// CountOccurrencesInMonth counts how many postings of a fixed-interval
// schedule anchored at anchorDate (YYYY-MM-DD) land inside the given
// month. Months hold 4 or 5 occurrences of a given weekday, so this is
// what makes weekly and bi-weekly amounts month-exact.
func CountOccurrencesInMonth(anchorDate string, year, month, intervalDays int) int {
	anchor, err := time.Parse("2006-01-02", anchorDate)
	if err != nil || intervalDays <= 0 {
		return 0
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	a := dayNumber(anchor)
	start := dayNumber(monthStart)
	end := dayNumber(monthEnd)

	// anchor past the month: nothing has started yet
	if a > end {
		return 0
	}

	// first occurrence on/after the month start
	steps := 0
	if a < start {
		steps = (start - a + intervalDays - 1) / intervalDays
	}
	first := a + steps*intervalDays
	if first > end {
		return 0
	}

	return (end-first)/intervalDays + 1
}

// ApplyProjection is a linear balance extrapolation.
func ApplyProjection(startingBalance, monthlyNet float64, months int) float64 {
	return startingBalance + monthlyNet*float64(months)
}

// RoundCurrency rounds to 2 decimal places at cents scale so displayed
// totals don't accumulate floating-point drift. Idempotent.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
