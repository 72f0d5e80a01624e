package util

import (
	"fmt"
	"strconv"
	"time"
)

// Months are zero-padded YYYY-MM strings throughout the app, so plain
// string comparison doubles as chronological comparison.

// ValidMonth reports whether s is a well-formed YYYY-MM month.
func ValidMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// SplitMonth returns the numeric year and month of a YYYY-MM string.
func SplitMonth(month string) (int, int, error) {
	if len(month) != 7 || month[4] != '-' {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	year, err := strconv.Atoi(month[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", month, err)
	}
	m, err := strconv.Atoi(month[5:])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month %q, month part out of range", month)
	}
	return year, m, nil
}

// MonthBefore returns the month immediately preceding the given one.
// January wraps to December of the previous year.
func MonthBefore(month string) string {
	year, m, err := SplitMonth(month)
	if err != nil {
		return month
	}
	if m == 1 {
		return fmt.Sprintf("%04d-12", year-1)
	}
	return fmt.Sprintf("%04d-%02d", year, m-1)
}

// AddMonths returns the month n steps after the given one (n may be
// negative).
func AddMonths(month string, n int) string {
	year, m, err := SplitMonth(month)
	if err != nil {
		return month
	}
	t := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Format("2006-01")
}

// CurrentMonth returns the current calendar month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}
