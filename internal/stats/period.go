// Package stats aggregates expenses for the dashboard charts.
//
// All functions are pure: they work on the expenses they are given and
// take the current time as an argument.
package stats

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
)

// Period is the time window statistics are calculated for.
type Period string

const (
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
	All   Period = "all"
)

// ParsePeriod parses the period query parameter.
//
// An empty value is the current month, unknown values mean all time.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case "":
		return Month
	case Week, Month, Year:
		return Period(s)
	default:
		return All
	}
}

// Start returns the beginning of the period that contains now.
// Weeks start on Monday.
func (p Period) Start(now time.Time) time.Time {
	year, month, day := now.Date()

	switch p {
	case Week:
		offset := (int(now.Weekday()) + 6) % 7
		return time.Date(year, month, day-offset, 0, 0, 0, 0, now.Location())
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	case Year:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(1970, time.January, 1, 0, 0, 0, 0, now.Location())
	}
}

// StartDate is the first day of the period.
func (p Period) StartDate(now time.Time) types.Date {
	return types.DateOf(p.Start(now))
}

// Filter returns the expenses on or after the first day of the period.
func (p Period) Filter(expenses []models.Expense, now time.Time) []models.Expense {
	start := p.StartDate(now)

	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Date.Before(start) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// days returns the number of calendar days elapsed in the period, at
// least 1. Both ends are calendar days so that DST changes do not count.
func (p Period) days(now time.Time) int64 {
	days := int64(types.DateOf(now).Time().Sub(p.StartDate(now).Time()) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}
