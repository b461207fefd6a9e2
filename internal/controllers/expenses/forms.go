package expenses

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Form is submitted to add or edit an expense. All fields are kept as
// strings so that invalid input can be shown again.
type Form struct {
	Amount      string `form:"amount" binding:"required,amount"`
	Date        string `form:"date" binding:"required,datetime=2006-01-02"`
	Description string `form:"description" binding:"required,notblank,max=255"`
	Category    string `form:"category" binding:"required,category"`
}

// formOf prefills the form with the values of an expense.
func formOf(e models.Expense) Form {
	return Form{
		Amount:      e.Amount.StringFixed(2),
		Date:        e.Date.String(),
		Description: e.Description,
		Category:    e.Category,
	}
}

// apply sets the values of a validated form on the expense.
func (f Form) apply(e *models.Expense) error {
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return models.ErrExpenseAmountNotPositive
	}

	date, err := types.ParseDate(f.Date)
	if err != nil {
		return models.ErrExpenseDateMissing
	}

	e.Amount = amount
	e.Date = date
	e.Description = f.Description
	e.Category = f.Category
	return nil
}

// Query are the filter and sort parameters of the expense list.
type Query struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Search    string `form:"search"`
}

type formPage struct {
	Action string
	Form   Form
	Errors map[string]string
}

type listPage struct {
	Filter   Query
	Expenses []models.Expense
	Total    decimal.Decimal
}
