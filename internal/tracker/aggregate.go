// Package tracker computes totals and category breakdowns over expenses and
// keeps the client-side view of the expense list.
package tracker

import (
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

// AllCategories selects every record in FilterByCategory.
const AllCategories models.Category = "All"

var hundred = decimal.NewFromInt(100)

// CategoryAmount is one entry of a category breakdown.
type CategoryAmount struct {
	Category models.Category
	Amount   decimal.Decimal
}

// CategoryPercent is the share of one category in a breakdown.
type CategoryPercent struct {
	Category models.Category
	Percent  decimal.Decimal
}

// FilterByCategory returns the records whose category equals category,
// preserving order. AllCategories returns the input unchanged.
func FilterByCategory(expenses []models.Expense, category models.Category) []models.Expense {
	if category == AllCategories {
		return expenses
	}
	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TotalIncome sums the amounts of income records.
func TotalIncome(expenses []models.Expense) decimal.Decimal {
	return sumByType(expenses, models.ExpenseTypeIncome)
}

// TotalExpense sums the amounts of expense records.
func TotalExpense(expenses []models.Expense) decimal.Decimal {
	return sumByType(expenses, models.ExpenseTypeExpense)
}

// NetBalance is TotalIncome minus TotalExpense.
func NetBalance(expenses []models.Expense) decimal.Decimal {
	return TotalIncome(expenses).Sub(TotalExpense(expenses))
}

// ExpenseByCategory sums expense records per category in declared category
// order. Categories summing to zero are omitted and records with an
// undeclared category are ignored.
func ExpenseByCategory(expenses []models.Expense) []CategoryAmount {
	sums := make(map[models.Category]decimal.Decimal, len(models.Categories))
	for _, e := range expenses {
		if e.Type != models.ExpenseTypeExpense || !e.Category.IsKnown() {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(decimal.NewFromFloat(e.Amount))
	}

	breakdown := make([]CategoryAmount, 0, len(sums))
	for _, c := range models.Categories {
		if sum, ok := sums[c]; ok && !sum.IsZero() {
			breakdown = append(breakdown, CategoryAmount{Category: c, Amount: sum})
		}
	}
	return breakdown
}

// CategoryShare converts a breakdown to percentages of its total.
func CategoryShare(breakdown []CategoryAmount) []CategoryPercent {
	total := decimal.Zero
	for _, b := range breakdown {
		total = total.Add(b.Amount)
	}
	if total.IsZero() {
		return []CategoryPercent{}
	}

	shares := make([]CategoryPercent, 0, len(breakdown))
	for _, b := range breakdown {
		shares = append(shares, CategoryPercent{
			Category: b.Category,
			Percent:  b.Amount.Mul(hundred).Div(total),
		})
	}
	return shares
}

// FormatAmount renders an amount rounded to two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func sumByType(expenses []models.Expense, typ models.ExpenseType) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		if e.Type == typ {
			sum = sum.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	return sum
}
