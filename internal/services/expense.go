package services

//go:generate mockgen -source=expense.go -destination=mock_expense_test.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrExpenseNotFound is returned when no expense matches the requested id.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseReader reads expenses from the store.
type ExpenseReader interface {
	List(ctx context.Context) ([]models.Expense, error) // Returns all expenses, newest first
}

// ExpenseWriter writes expenses to the store.
// Update returns nil and Delete returns false when the id is absent.
type ExpenseWriter interface {
	Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ExpenseCache caches the full expense list.
type ExpenseCache interface {
	GetExpenses(ctx context.Context) ([]models.Expense, error)
	SetExpenses(ctx context.Context, expenses []models.Expense) error
	Invalidate(ctx context.Context) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ExpenseService validates requests, talks to the store, keeps the list
// cache coherent and publishes change events.
type ExpenseService struct {
	reader      ExpenseReader
	writer      ExpenseWriter
	cache       ExpenseCache
	kafkaWriter KafkaWriter
	afterCommit func(ctx context.Context, fn func(ctx context.Context))
}

// Option configures an ExpenseService.
type Option func(*ExpenseService)

// WithAfterCommit defers cache invalidation and event publishing through
// hook, which must run fn once the surrounding store transaction commits.
func WithAfterCommit(hook func(ctx context.Context, fn func(ctx context.Context))) Option {
	return func(s *ExpenseService) {
		s.afterCommit = hook
	}
}

// NewExpenseService creates a new ExpenseService. cache and kafkaWriter may be nil.
func NewExpenseService(
	reader ExpenseReader,
	writer ExpenseWriter,
	cache ExpenseCache,
	kafkaWriter KafkaWriter,
	opts ...Option,
) *ExpenseService {
	s := &ExpenseService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		afterCommit: func(ctx context.Context, fn func(ctx context.Context)) { fn(ctx) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every expense, most recently created first.
func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetExpenses(ctx); err == nil {
			return cached, nil
		}
	}

	expenses, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list expenses", "error", err)
		return nil, err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	if s.cache != nil {
		if err := s.cache.SetExpenses(ctx, expenses); err != nil {
			logger.Log.Warnw("failed to cache expenses", "error", err)
		}
	}
	return expenses, nil
}

// Create validates and stores a new expense.
func (s *ExpenseService) Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	in.Label = strings.TrimSpace(in.Label)
	if err := in.Validate(); err != nil {
		logger.Log.Warnw("invalid expense", "error", err)
		return nil, err
	}

	expense, err := s.writer.Create(ctx, in)
	if err != nil {
		logger.Log.Errorw("failed to create expense", "label", in.Label, "amount", in.Amount, "error", err)
		return nil, err
	}

	s.committed(ctx, models.OperationCreated, expense.ID, expense)
	return expense, nil
}

// Update overwrites the present fields of the expense with the given id.
func (s *ExpenseService) Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error) {
	if fields.Label != nil {
		trimmed := strings.TrimSpace(*fields.Label)
		fields.Label = &trimmed
	}
	if err := fields.Validate(); err != nil {
		logger.Log.Warnw("invalid expense fields", "id", id, "error", err)
		return nil, err
	}

	expense, err := s.writer.Update(ctx, id, fields)
	if err != nil {
		logger.Log.Errorw("failed to update expense", "id", id, "error", err)
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	s.committed(ctx, models.OperationUpdated, expense.ID, expense)
	return expense, nil
}

// Delete removes the expense with the given id.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	deleted, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete expense", "id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}

	s.committed(ctx, models.OperationDeleted, id, nil)
	return nil
}

// committed invalidates the cache and publishes the change once the write
// is durable.
func (s *ExpenseService) committed(ctx context.Context, operation, expenseID string, expense *models.Expense) {
	s.afterCommit(ctx, func(ctx context.Context) {
		s.invalidate(ctx)
		s.publish(ctx, operation, expenseID, expense)
	})
}

func (s *ExpenseService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Log.Errorw("failed to invalidate expense cache", "error", err)
	}
}

// publish sends a change event. Failures are logged, never returned.
func (s *ExpenseService) publish(ctx context.Context, operation, expenseID string, expense *models.Expense) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "expense_id", expenseID)
		return
	}

	event := models.ExpenseEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Operation: operation,
		ExpenseID: expenseID,
		Expense:   expense,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal expense event", "expense_id", expenseID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(expenseID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish expense event", "expense_id", expenseID, "operation", operation, "error", err)
	} else {
		logger.Log.Infow("Expense event published", "expense_id", expenseID, "operation", operation)
	}
}
