package models

// Operations carried by an ExpenseEvent.
const (
	OperationCreated = "created"
	OperationUpdated = "updated"
	OperationDeleted = "deleted"
)

// ExpenseEvent is published to the message broker after every successful write.
type ExpenseEvent struct {
	EventID   string   `json:"event_id"`          // EventID is a unique identifier for the event.
	Timestamp int64    `json:"timestamp"`         // Timestamp is the Unix time (seconds) of the write.
	Operation string   `json:"operation"`         // Operation is created, updated or deleted.
	ExpenseID string   `json:"expense_id"`        // ExpenseID identifies the affected record.
	Expense   *Expense `json:"expense,omitempty"` // Expense is the record after the write; nil on delete.
}
