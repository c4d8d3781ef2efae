package borrowing

import (
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// AggregateTypeTransaction names the transaction aggregate in events
const AggregateTypeTransaction = "BorrowingTransaction"

// Event type constants
const (
	EventTypeTransactionCreated       = "BorrowingTransactionCreated"
	EventTypeTransactionStatusChanged = "BorrowingTransactionStatusChanged"
)

// TransactionCreatedEvent is recorded when an item is lent out
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID     int64       `json:"item_id"`
	BorrowerID int64       `json:"borrower_id"`
	DueDate    shared.Date `json:"due_date"`
	Status     Status      `json:"status"`
}

// NewTransactionCreatedEvent creates a new TransactionCreatedEvent
func NewTransactionCreatedEvent(t *Transaction) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCreated, AggregateTypeTransaction, t.ID),
		ItemID:          t.ItemID,
		BorrowerID:      t.BorrowerID,
		DueDate:         t.DueDate,
		Status:          t.Status,
	}
}

// TransactionStatusChangedEvent is recorded when a transaction moves between
// borrowed, overdue and returned
type TransactionStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewTransactionStatusChangedEvent creates a new TransactionStatusChangedEvent
func NewTransactionStatusChangedEvent(t *Transaction, from Status) *TransactionStatusChangedEvent {
	return &TransactionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionStatusChanged, AggregateTypeTransaction, t.ID),
		From:            from,
		To:              t.Status,
	}
}
