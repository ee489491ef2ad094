package models

import "time"

// Category groups expenses for filtering and reporting.
type Category string

// Supported categories, in the order they are reported.
const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategorySalary         Category = "Salary"
	CategoryOther          Category = "Other"
)

// Categories lists every supported category in declared order.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategorySalary,
	CategoryOther,
}

// IsKnown reports whether c is one of the declared categories.
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpenseType tells income apart from spending.
type ExpenseType string

const (
	ExpenseTypeIncome  ExpenseType = "income"
	ExpenseTypeExpense ExpenseType = "expense"
)

// IsValid reports whether t is income or expense.
func (t ExpenseType) IsValid() bool {
	return t == ExpenseTypeIncome || t == ExpenseTypeExpense
}

// Expense is a single income or expense record as persisted by the store.
// swagger:model Expense
type Expense struct {
	// Store-assigned identifier
	// example: 65a1f0c2e4b0a1b2c3d4e5f6
	ID string `json:"id" db:"id"`

	// Description
	// example: Coffee
	Label string `json:"label" db:"label"`

	// Positive amount
	// example: 4.5
	Amount float64 `json:"amount" db:"amount"`

	// Calendar date
	// example: 2024-01-01
	Date Date `json:"date" db:"date" swaggertype:"string"`

	// Category
	// example: Food
	Category Category `json:"category" db:"category"`

	// income or expense
	// example: expense
	Type ExpenseType `json:"type" db:"type"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Server-assigned creation timestamp
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // Last modification timestamp
}

// ExpenseInput is a complete candidate record, used on create.
// swagger:model ExpenseInput
type ExpenseInput struct {
	// required: true
	// example: Coffee
	Label string `json:"label"`

	// required: true
	// example: 4.5
	Amount float64 `json:"amount"`

	// required: true
	// example: 2024-01-01
	Date Date `json:"date" swaggertype:"string"`

	// required: true
	// example: Food
	Category Category `json:"category"`

	// required: true
	// example: expense
	Type ExpenseType `json:"type"`
}

// ExpenseFields is a partial update; nil fields are left untouched.
// swagger:model ExpenseFields
type ExpenseFields struct {
	Label    *string      `json:"label,omitempty"`
	Amount   *float64     `json:"amount,omitempty"`
	Date     *Date        `json:"date,omitempty" swaggertype:"string"`
	Category *Category    `json:"category,omitempty"`
	Type     *ExpenseType `json:"type,omitempty"`
}

// Fields converts a complete input into an update that overwrites every field.
func (in ExpenseInput) Fields() ExpenseFields {
	return ExpenseFields{
		Label:    &in.Label,
		Amount:   &in.Amount,
		Date:     &in.Date,
		Category: &in.Category,
		Type:     &in.Type,
	}
}

// Apply overwrites the fields of e that are present in f.
func (f ExpenseFields) Apply(e *Expense) {
	if f.Label != nil {
		e.Label = *f.Label
	}
	if f.Amount != nil {
		e.Amount = *f.Amount
	}
	if f.Date != nil {
		e.Date = *f.Date
	}
	if f.Category != nil {
		e.Category = *f.Category
	}
	if f.Type != nil {
		e.Type = *f.Type
	}
}
