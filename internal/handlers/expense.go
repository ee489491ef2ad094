package handlers

//go:generate mockgen -source=expense.go -destination=mock_expense_test.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
	"github.com/sbilibin2017/gw-expense-tracker/internal/services"
)

const (
	msgNotFound      = "Expense not found"
	msgInvalidBody   = "Invalid request body"
	msgInternalError = "Internal server error"
	msgDeleted       = "Deleted successfully"
)

// ExpenseLister defines the interface that the service must implement.
type ExpenseLister interface {
	List(ctx context.Context) ([]models.Expense, error)
}

// ExpenseCreator defines the interface that the service must implement.
type ExpenseCreator interface {
	Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
}

// ExpenseUpdater defines the interface that the service must implement.
type ExpenseUpdater interface {
	Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error)
}

// ExpenseDeleter defines the interface that the service must implement.
type ExpenseDeleter interface {
	Delete(ctx context.Context, id string) error
}

// NewListExpensesHandler returns an HTTP handler listing all expenses.
// @Summary List expenses
// @Description Returns every expense, most recently created first.
// @Tags expenses
// @Produce json
// @Success 200 {array} models.Expense
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /expenses [get]
func NewListExpensesHandler(svc ExpenseLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

// NewCreateExpenseHandler returns an HTTP handler creating an expense.
// @Summary Create expense
// @Description Validates and stores a new expense. The store assigns the id.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body models.ExpenseInput true "Expense"
// @Success 201 {object} models.Expense
// @Failure 400 {object} models.ErrorResponse "Invalid expense"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /expenses [post]
func NewCreateExpenseHandler(svc ExpenseCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ExpenseInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			logger.Log.Warnw("failed to decode expense", "error", err)
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		expense, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, expense)
	}
}

// NewUpdateExpenseHandler returns an HTTP handler overwriting expense fields.
// @Summary Update expense
// @Description Overwrites the fields present in the body; absent fields keep their value.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense id"
// @Param fields body models.ExpenseFields true "Fields to overwrite"
// @Success 200 {object} models.Expense
// @Failure 400 {object} models.ErrorResponse "Invalid fields"
// @Failure 404 {object} models.ErrorResponse "Expense not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /expenses/{id} [put]
func NewUpdateExpenseHandler(svc ExpenseUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var fields models.ExpenseFields
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			logger.Log.Warnw("failed to decode expense fields", "id", id, "error", err)
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		expense, err := svc.Update(r.Context(), id, fields)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expense)
	}
}

// NewDeleteExpenseHandler returns an HTTP handler removing an expense.
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense id"
// @Success 200 {object} models.MessageResponse "Deleted successfully"
// @Failure 404 {object} models.ErrorResponse "Expense not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /expenses/{id} [delete]
func NewDeleteExpenseHandler(svc ExpenseDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: msgDeleted})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		logger.Log.Errorw("internal server error", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}
