package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ExpenseService is the full set of operations served under /expenses.
type ExpenseService interface {
	ExpenseLister
	ExpenseCreator
	ExpenseUpdater
	ExpenseDeleter
}

// RegisterExpenseRoutes mounts the expense endpoints on r. Write middlewares
// wrap only the mutating routes.
func RegisterExpenseRoutes(r chi.Router, svc ExpenseService, writeMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/expenses", NewListExpensesHandler(svc))

	r.Group(func(r chi.Router) {
		r.Use(writeMiddlewares...)
		r.Post("/expenses", NewCreateExpenseHandler(svc))
		r.Put("/expenses/{id}", NewUpdateExpenseHandler(svc))
		r.Delete("/expenses/{id}", NewDeleteExpenseHandler(svc))
	})
}
