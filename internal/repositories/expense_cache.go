package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

const expensesListKey = "expenses:list"

// ErrCacheMiss is returned when the expense list is not cached.
var ErrCacheMiss = errors.New("expense list not found in cache")

// ExpenseCacheRepository caches the full expense list in Redis.
type ExpenseCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewExpenseCacheRepository creates a cache whose entries expire after expiration.
func NewExpenseCacheRepository(client *redis.Client, expiration time.Duration) *ExpenseCacheRepository {
	return &ExpenseCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetExpenses returns the cached list or ErrCacheMiss.
func (r *ExpenseCacheRepository) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	val, err := r.client.Get(ctx, expensesListKey).Bytes()
	if err != nil {
		logger.Log.Infow("redis", "key", expensesListKey, "result", nil, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var expenses []models.Expense
	if err := json.Unmarshal(val, &expenses); err != nil {
		logger.Log.Infow("redis", "key", expensesListKey, "result", nil, "error", err)
		return nil, err
	}

	logger.Log.Infow("redis", "key", expensesListKey, "result", len(expenses), "error", nil)
	return expenses, nil
}

// SetExpenses stores the list.
func (r *ExpenseCacheRepository) SetExpenses(ctx context.Context, expenses []models.Expense) error {
	data, err := json.Marshal(expenses)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, expensesListKey, data, r.exp).Err()
	logger.Log.Infow("redis", "key", expensesListKey, "size", len(expenses), "error", err)
	return err
}

// Invalidate drops the cached list.
func (r *ExpenseCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Del(ctx, expensesListKey).Err()
	logger.Log.Infow("redis", "key", expensesListKey, "op", "del", "error", err)
	return err
}
