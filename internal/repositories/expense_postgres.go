package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

const expenseColumns = `id, label, amount, date, category, type, created_at, updated_at`

// ExpensePostgresRepository stores expenses in the expenses table.
type ExpensePostgresRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewExpensePostgresRepository creates the repository. txGetter may be nil;
// when it returns a transaction the statements run inside it.
func NewExpensePostgresRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ExpensePostgresRepository {
	return &ExpensePostgresRepository{db: db, txGetter: txGetter}
}

func (r *ExpensePostgresRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// List returns every expense, most recently created first.
func (r *ExpensePostgresRepository) List(ctx context.Context) ([]models.Expense, error) {
	const query = `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY created_at DESC
	`

	expenses := []models.Expense{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &expenses, query)

	logger.Log.Infow("sql",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{},
		"result", len(expenses),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Create inserts a new expense with a fresh UUID.
func (r *ExpensePostgresRepository) Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	const query = `
		INSERT INTO expenses (id, label, amount, date, category, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + expenseColumns

	args := []any{uuid.NewString(), in.Label, in.Amount, in.Date.Time, string(in.Category), string(in.Type)}

	var expense models.Expense
	err := sqlx.GetContext(ctx, r.executor(ctx), &expense, query, args...)

	logger.Log.Infow("sql",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", expense.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update overwrites the present fields. It returns nil, nil when no row matches id.
func (r *ExpensePostgresRepository) Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	const query = `
		UPDATE expenses
		SET label = COALESCE($2, label),
		    amount = COALESCE($3, amount),
		    date = COALESCE($4, date),
		    category = COALESCE($5, category),
		    type = COALESCE($6, type),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + expenseColumns

	args := []any{id, nullable(fields.Label), nullable(fields.Amount), nullableDate(fields.Date),
		nullableString(fields.Category), nullableString(fields.Type)}

	var expense models.Expense
	err := sqlx.GetContext(ctx, r.executor(ctx), &expense, query, args...)

	logger.Log.Infow("sql",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", expense.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Delete removes the expense and reports whether a row existed.
func (r *ExpensePostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	const query = `DELETE FROM expenses WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("sql",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableString[T ~string](p *T) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

func nullableDate(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
