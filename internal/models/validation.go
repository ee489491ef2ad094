package models

import (
	"math"
	"strings"
)

// Messages shown to the user when an expense fails validation.
const (
	MsgLabelRequired    = "Description is required."
	MsgDateRequired     = "Date is required."
	MsgInvalidDate      = "Please enter a valid date."
	MsgInvalidAmount    = "Please enter a valid amount greater than 0."
	MsgCategoryRequired = "Category is required."
	MsgInvalidType      = "Please select a valid type."
)

// ValidationError reports the first rule an expense failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ValidAmount reports whether a is a finite number greater than zero.
func ValidAmount(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) && a > 0
}

// Validate checks a complete candidate. Rules run in order and the first
// failure wins: label, date, amount, category, type.
func (in ExpenseInput) Validate() error {
	return in.Fields().Validate()
}

// Validate checks only the fields that are present.
func (f ExpenseFields) Validate() error {
	if f.Label != nil && strings.TrimSpace(*f.Label) == "" {
		return invalid("label", MsgLabelRequired)
	}
	if f.Date != nil && f.Date.IsZero() {
		return invalid("date", MsgDateRequired)
	}
	if f.Amount != nil && !ValidAmount(*f.Amount) {
		return invalid("amount", MsgInvalidAmount)
	}
	if f.Category != nil && strings.TrimSpace(string(*f.Category)) == "" {
		return invalid("category", MsgCategoryRequired)
	}
	if f.Type != nil && !f.Type.IsValid() {
		return invalid("type", MsgInvalidType)
	}
	return nil
}
