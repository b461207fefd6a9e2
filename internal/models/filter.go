package models

import (
	"strings"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort orders for expense lists.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// sortColumns maps the sort_by values to columns.
var sortColumns = map[string]string{
	"date":     "date",
	"amount":   "amount",
	"category": "category",
}

// ExpenseFilter narrows down and orders a list of expenses.
//
// Zero values do not filter.
type ExpenseFilter struct {
	Category  string
	Start     *types.Date
	End       *types.Date
	SortBy    string
	SortOrder string
	Search    string
}

// Apply adds the conditions and the ordering to the query.
// Search is not applied here, see Match.
func (f ExpenseFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	if f.Start != nil && !f.Start.IsZero() {
		q = q.Where("date >= ?", *f.Start)
	}

	if f.End != nil && !f.End.IsZero() {
		q = q.Where("date <= ?", *f.End)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "date"
	}

	desc := strings.ToLower(f.SortOrder) != SortAscending

	return q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: desc})
}

// Match returns the expenses whose description matches the search pattern.
//
// The pattern is case insensitive and supports "*" as wildcard. Without a
// wildcard, it matches anywhere in the description.
func (f ExpenseFilter) Match(expenses []Expense) []Expense {
	pattern := strings.ToLower(strings.TrimSpace(f.Search))
	if pattern == "" {
		return expenses
	}

	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	matched := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if glob.Glob(pattern, strings.ToLower(e.Description)) {
			matched = append(matched, e)
		}
	}

	return matched
}
