package models

import "golang.org/x/exp/slices"

// Categories are the labels an expense can be filed under, in display order.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Utilities",
	"Housing",
	"Healthcare",
	"Education",
	"Travel",
	"Miscellaneous",
}

// ValidCategory reports whether the label is one of the Categories.
func ValidCategory(label string) bool {
	return slices.Contains(Categories, label)
}
