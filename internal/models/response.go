package models

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Expense not found
	Error string `json:"error"`
}

// MessageResponse is the body of a successful delete.
// swagger:model MessageResponse
type MessageResponse struct {
	// example: Deleted successfully
	Message string `json:"message"`
}
