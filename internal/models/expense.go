package models

import (
	"strings"
	"unicode/utf8"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single amount of money spent by a user.
type Expense struct {
	DefaultModel
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8);not null" example:"12.5"`
	Date        types.Date      `json:"date" gorm:"index;not null" example:"2024-05-12" swaggertype:"primitive,string"`
	Description string          `json:"description" gorm:"size:255;not null" example:"Lunch"`
	Category    string          `json:"category" gorm:"size:50;not null" example:"Food & Dining"`
	UserID      uuid.UUID       `json:"-" gorm:"type:uuid;index;not null"`
	User        User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave validates the expense.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if e.Date.IsZero() {
		return ErrExpenseDateMissing
	}

	if e.Description == "" {
		return ErrExpenseDescriptionEmpty
	}

	if utf8.RuneCountInString(e.Description) > 255 {
		return ErrExpenseDescriptionLength
	}

	if !ValidCategory(e.Category) {
		return ErrExpenseCategoryInvalid
	}

	return nil
}
