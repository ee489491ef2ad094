package client

import (
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

// ExpenseForm holds raw user input for an expense before it is validated.
type ExpenseForm struct {
	Label    string
	Amount   string
	Date     string
	Category string
	Type     string
}

// FormFromExpense pre-fills a form from an existing record.
func FormFromExpense(e models.Expense) ExpenseForm {
	return ExpenseForm{
		Label:    e.Label,
		Amount:   strconv.FormatFloat(e.Amount, 'f', -1, 64),
		Date:     e.Date.String(),
		Category: string(e.Category),
		Type:     string(e.Type),
	}
}

// Parse validates the form and converts it to an ExpenseInput.
// Rules are checked in order and the first failure is returned as a
// *models.ValidationError.
func (f ExpenseForm) Parse() (models.ExpenseInput, error) {
	label := strings.TrimSpace(f.Label)
	if label == "" {
		return models.ExpenseInput{}, &models.ValidationError{Field: "label", Message: models.MsgLabelRequired}
	}

	rawDate := strings.TrimSpace(f.Date)
	if rawDate == "" {
		return models.ExpenseInput{}, &models.ValidationError{Field: "date", Message: models.MsgDateRequired}
	}
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return models.ExpenseInput{}, &models.ValidationError{Field: "date", Message: models.MsgInvalidDate}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil || !models.ValidAmount(amount) {
		return models.ExpenseInput{}, &models.ValidationError{Field: "amount", Message: models.MsgInvalidAmount}
	}

	category := models.Category(strings.TrimSpace(f.Category))
	if category == "" {
		category = models.CategoryFood
	}

	typ := models.ExpenseType(strings.TrimSpace(f.Type))
	if typ == "" {
		typ = models.ExpenseTypeExpense
	}
	if !typ.IsValid() {
		return models.ExpenseInput{}, &models.ValidationError{Field: "type", Message: models.MsgInvalidType}
	}

	return models.ExpenseInput{
		Label:    label,
		Amount:   amount,
		Date:     date,
		Category: category,
		Type:     typ,
	}, nil
}
