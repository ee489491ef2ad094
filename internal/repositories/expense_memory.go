package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

// ExpenseMemoryRepository keeps expenses in process memory, newest first.
// It backs STORE_DRIVER=memory and end-to-end tests.
type ExpenseMemoryRepository struct {
	mu       sync.RWMutex
	expenses []models.Expense
}

// NewExpenseMemoryRepository creates an empty repository.
func NewExpenseMemoryRepository() *ExpenseMemoryRepository {
	return &ExpenseMemoryRepository{}
}

// List returns a copy of every expense, most recently created first.
func (r *ExpenseMemoryRepository) List(ctx context.Context) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Expense, len(r.expenses))
	copy(out, r.expenses)
	return out, nil
}

// Create stores a new expense with a fresh UUID at the head of the list.
func (r *ExpenseMemoryRepository) Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	now := time.Now().UTC()
	expense := models.Expense{
		ID:        uuid.NewString(),
		Label:     in.Label,
		Amount:    in.Amount,
		Date:      in.Date,
		Category:  in.Category,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.expenses = append([]models.Expense{expense}, r.expenses...)
	r.mu.Unlock()

	return &expense, nil
}

// Update overwrites the present fields. It returns nil, nil when no expense matches id.
func (r *ExpenseMemoryRepository) Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.expenses {
		if r.expenses[i].ID == id {
			fields.Apply(&r.expenses[i])
			r.expenses[i].UpdatedAt = time.Now().UTC()
			expense := r.expenses[i]
			return &expense, nil
		}
	}
	return nil, nil
}

// Delete removes the expense and reports whether it existed.
func (r *ExpenseMemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.expenses {
		if r.expenses[i].ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
