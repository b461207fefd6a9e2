package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account that owns expenses.
type User struct {
	DefaultModel
	Username     string `json:"username" gorm:"uniqueIndex;size:64;not null" example:"jane"`
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null" example:"jane@example.com"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
}

// BeforeSave normalizes the username and email.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// SetPassword hashes the password with bcrypt.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserByEmail returns the user with the given email.
func UserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	return user, err
}

// UsernameTaken reports whether an account with the username exists.
func UsernameTaken(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&User{}).Where("username = ?", strings.TrimSpace(username)).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether an account with the email exists.
func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&User{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Count(&count).Error
	return count > 0, err
}

// Expenses returns the user's expenses matching the filter.
func (u User) Expenses(db *gorm.DB, filter ExpenseFilter) ([]Expense, error) {
	var expenses []Expense

	err := filter.Apply(db.Where("user_id = ?", u.ID)).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return filter.Match(expenses), nil
}

// ExpenseCount returns the number of expenses the user owns.
func (u User) ExpenseCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Expense{}).Where("user_id = ?", u.ID).Count(&count).Error
	return count, err
}

// Expense returns the expense with the ID if the user owns it.
//
// Expenses of other users are reported as not found.
func (u User) Expense(db *gorm.DB, id uuid.UUID) (Expense, error) {
	var expense Expense

	err := db.Where("user_id = ?", u.ID).First(&expense, "id = ?", id).Error
	if err != nil {
		return Expense{}, err
	}

	return expense, nil
}
