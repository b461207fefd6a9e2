package stats

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Spending trends
const (
	TrendIncreasing    = "Increasing"
	TrendDecreasing    = "Decreasing"
	TrendStable        = "Stable"
	TrendNotEnoughData = "Not enough data"
	NoData             = "No data available"
)

var (
	increaseThreshold = decimal.NewFromFloat(1.1)
	decreaseThreshold = decimal.NewFromFloat(0.9)
)

// Summary is the total spending in a period.
type Summary struct {
	Total         float64 `json:"total" example:"1234.56"`
	AveragePerDay float64 `json:"average_per_day" example:"41.15"`
	Count         int     `json:"count" example:"17"`
}

// Series is chart data with a value for each label.
type Series struct {
	Labels []string  `json:"labels" example:"Food & Dining,Travel"`
	Data   []float64 `json:"data" example:"120.5,89"`
}

// Insights describes the spending across all expenses.
type Insights struct {
	TopSpendingCategory string  `json:"top_spending_category" example:"Food & Dining ($120.50)"`
	BiggestExpense      string  `json:"biggest_expense" example:"Train to Berlin ($89.00)"`
	AverageTransaction  float64 `json:"average_transaction" example:"23.17"`
	SpendingTrend       string  `json:"spending_trend" example:"Stable"`
}

// money rounds to cents for JSON responses.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func sum(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func mean(expenses []models.Expense) decimal.Decimal {
	return sum(expenses).Div(decimal.NewFromInt(int64(len(expenses))))
}

// Totals sums up the expenses in the period.
//
// The average per day divides by the number of whole days elapsed since
// the period started, but at least by one.
func Totals(expenses []models.Expense, period Period, now time.Time) Summary {
	expenses = period.Filter(expenses, now)
	if len(expenses) == 0 {
		return Summary{}
	}

	total := sum(expenses)

	return Summary{
		Total:         money(total),
		AveragePerDay: money(total.Div(decimal.NewFromInt(period.days(now)))),
		Count:         len(expenses),
	}
}

// categoryTotals sums the amounts per category. Categories are returned in
// the order they are first seen.
func categoryTotals(expenses []models.Expense) ([]string, map[string]decimal.Decimal) {
	labels := make([]string, 0)
	totals := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if _, ok := totals[e.Category]; !ok {
			labels = append(labels, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	return labels, totals
}

// CategoryBreakdown sums the expenses in the period by category.
func CategoryBreakdown(expenses []models.Expense, period Period, now time.Time) Series {
	labels, totals := categoryTotals(period.Filter(expenses, now))

	data := make([]float64, 0, len(labels))
	for _, label := range labels {
		data = append(data, money(totals[label]))
	}

	return Series{Labels: labels, Data: data}
}

// MonthlyTrend sums the expenses for each of the last months, oldest first.
//
// The months are found by going back in steps of 30 days from the first
// of the current month. This can skip a month or return one twice.
func MonthlyTrend(expenses []models.Expense, months int, now time.Time) Series {
	months = max(months, 0)

	s := Series{
		Labels: make([]string, 0, months),
		Data:   make([]float64, 0, months),
	}

	first := types.MonthOf(now).First()
	for i := months - 1; i >= 0; i-- {
		month := first.AddDays(-30 * i).Month()

		total := decimal.Zero
		for _, e := range expenses {
			if month.Contains(e.Date) {
				total = total.Add(e.Amount)
			}
		}

		s.Labels = append(s.Labels, month.Label())
		s.Data = append(s.Data, money(total))
	}

	return s
}

// Trend compares the average amount of the later half of the expenses to
// the earlier half. With an odd number of expenses, the earlier half is
// the shorter one.
func Trend(expenses []models.Expense) string {
	if len(expenses) < 2 {
		return TrendNotEnoughData
	}

	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, func(a, b models.Expense) int {
		return a.Date.Time().Compare(b.Date.Time())
	})

	mid := len(sorted) / 2
	first := mean(sorted[:mid])
	second := mean(sorted[mid:])

	switch {
	case second.GreaterThan(first.Mul(increaseThreshold)):
		return TrendIncreasing
	case second.LessThan(first.Mul(decreaseThreshold)):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// CalculateInsights describes all expenses of a user.
func CalculateInsights(expenses []models.Expense) Insights {
	if len(expenses) == 0 {
		return Insights{
			TopSpendingCategory: NoData,
			BiggestExpense:      NoData,
			AverageTransaction:  0,
			SpendingTrend:       NoData,
		}
	}

	labels, totals := categoryTotals(expenses)
	top := labels[0]
	for _, label := range labels[1:] {
		if totals[label].GreaterThan(totals[top]) {
			top = label
		}
	}

	biggest := expenses[0]
	for _, e := range expenses[1:] {
		if e.Amount.GreaterThan(biggest.Amount) {
			biggest = e
		}
	}

	return Insights{
		TopSpendingCategory: fmt.Sprintf("%s ($%s)", top, totals[top].StringFixed(2)),
		BiggestExpense:      fmt.Sprintf("%s ($%s)", biggest.Description, biggest.Amount.StringFixed(2)),
		AverageTransaction:  money(mean(expenses)),
		SpendingTrend:       Trend(expenses),
	}
}
