package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrUsernameNotUnique = errors.New("Username already exists. Please choose a different one.")
	ErrEmailNotUnique    = errors.New("Email already registered. Please use a different one.")
)

var (
	ErrExpenseAmountNotPositive = errors.New("Amount must be a positive number")
	ErrExpenseCategoryInvalid   = errors.New("Invalid category")
	ErrExpenseDescriptionEmpty  = errors.New("Description is required")
	ErrExpenseDescriptionLength = errors.New("Description cannot be longer than 255 characters")
	ErrExpenseDateMissing       = errors.New("Date must be in YYYY-MM-DD format")
)
