package models_test

import (
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	expense := suite.createTestExpense(models.Expense{
		Description: "\t Coffee with Sam   ",
		Category:    " Food & Dining ",
	})

	suite.Assert().Equal("Coffee with Sam", expense.Description)
	suite.Assert().Equal("Food & Dining", expense.Category)
}

func (suite *TestSuiteStandard) TestExpenseValidation() {
	user := suite.createTestUser(models.User{})
	valid := func() models.Expense {
		return models.Expense{
			UserID:      user.ID,
			Amount:      decimal.NewFromFloat(12.5),
			Date:        types.NewDate(2024, time.May, 12),
			Description: "Lunch",
			Category:    "Food & Dining",
		}
	}

	tests := []struct {
		name   string
		modify func(*models.Expense)
		err    error
	}{
		{"Zero amount", func(e *models.Expense) { e.Amount = decimal.Zero }, models.ErrExpenseAmountNotPositive},
		{"Negative amount", func(e *models.Expense) { e.Amount = decimal.NewFromFloat(-3) }, models.ErrExpenseAmountNotPositive},
		{"No date", func(e *models.Expense) { e.Date = types.Date{} }, models.ErrExpenseDateMissing},
		{"Blank description", func(e *models.Expense) { e.Description = "   " }, models.ErrExpenseDescriptionEmpty},
		{"Long description", func(e *models.Expense) { e.Description = strings.Repeat("a", 256) }, models.ErrExpenseDescriptionLength},
		{"Unknown category", func(e *models.Expense) { e.Category = "Gadgets" }, models.ErrExpenseCategoryInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			expense := valid()
			tt.modify(&expense)

			err := models.DB.Create(&expense).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}

	expense := valid()
	suite.Require().Nil(models.DB.Create(&expense).Error)

	expense.Category = "Gadgets"
	err := models.DB.Save(&expense).Error
	suite.Assert().ErrorIs(err, models.ErrExpenseCategoryInvalid)
}

func (suite *TestSuiteStandard) TestExpenseDateRoundTrip() {
	expense := suite.createTestExpense(models.Expense{Date: types.NewDate(2024, time.February, 29)})

	var found models.Expense
	suite.Require().Nil(models.DB.First(&found, "id = ?", expense.ID).Error)

	suite.Assert().Equal("2024-02-29", found.Date.String())
	suite.Assert().True(expense.Amount.Equal(found.Amount))
}

func (suite *TestSuiteStandard) TestExpenseUnknownUser() {
	expense := models.Expense{
		Amount:      decimal.NewFromFloat(1),
		Date:        types.NewDate(2024, time.May, 12),
		Description: "Orphan",
		Category:    "Travel",
	}

	err := models.DB.Create(&expense).Error
	suite.Assert().NotNil(err)
}
