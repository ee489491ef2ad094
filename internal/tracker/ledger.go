package tracker

//go:generate mockgen -source=ledger.go -destination=mock_ledger_test.go -package=tracker

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-expense-tracker/internal/client"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

// Store is the remote expense store the ledger reads from and writes to.
type Store interface {
	List(ctx context.Context) ([]models.Expense, error)
	Create(ctx context.Context, form client.ExpenseForm) (*models.Expense, error)
	Update(ctx context.Context, id string, form client.ExpenseForm) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

// Summary holds the totals of a view.
type Summary struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	Net       decimal.Decimal
	Breakdown []CategoryAmount
}

// Ledger holds the in-memory expense list and the active category filter.
// The list changes only after the store confirms an operation; a failed
// call leaves it untouched. A Ledger is not safe for concurrent use.
type Ledger struct {
	store    Store
	expenses []models.Expense
	filter   models.Category
}

// NewLedger creates an empty Ledger showing all categories.
func NewLedger(store Store) *Ledger {
	return &Ledger{
		store:    store,
		expenses: []models.Expense{},
		filter:   AllCategories,
	}
}

// Load replaces the list with the store contents.
func (l *Ledger) Load(ctx context.Context) error {
	expenses, err := l.store.List(ctx)
	if err != nil {
		return err
	}
	l.expenses = expenses
	logger.Log.Debugw("ledger loaded", "count", len(expenses))
	return nil
}

// Add creates an expense and prepends it to the list.
func (l *Ledger) Add(ctx context.Context, form client.ExpenseForm) (*models.Expense, error) {
	created, err := l.store.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	l.expenses = append([]models.Expense{*created}, l.expenses...)
	return created, nil
}

// Edit updates an expense and replaces it in place.
func (l *Ledger) Edit(ctx context.Context, id string, form client.ExpenseForm) (*models.Expense, error) {
	updated, err := l.store.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			l.expenses[i] = *updated
			break
		}
	}
	return updated, nil
}

// Remove deletes an expense and drops it from the list.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, id); err != nil {
		return err
	}
	kept := make([]models.Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.expenses = kept
	return nil
}

// Find returns the expense with the given id from the list.
func (l *Ledger) Find(id string) (models.Expense, bool) {
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

// Expenses returns a copy of the full list.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// SetFilter selects the category shown by Visible and Summary.
func (l *Ledger) SetFilter(category models.Category) {
	if category == "" {
		category = AllCategories
	}
	l.filter = category
}

// Filter returns the active category filter.
func (l *Ledger) Filter() models.Category {
	return l.filter
}

// Visible returns the records matching the active filter.
func (l *Ledger) Visible() []models.Expense {
	return FilterByCategory(l.Expenses(), l.filter)
}

// Summary computes totals over the visible records.
func (l *Ledger) Summary() Summary {
	visible := l.Visible()
	return Summary{
		Income:    TotalIncome(visible),
		Expense:   TotalExpense(visible),
		Net:       NetBalance(visible),
		Breakdown: ExpenseByCategory(visible),
	}
}
