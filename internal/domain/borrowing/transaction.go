package borrowing

import (
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Status is the lifecycle state of a borrowing transaction
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusOverdue  Status = "overdue"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusBorrowed, StatusReturned, StatusOverdue:
		return true
	default:
		return false
	}
}

// Transaction links one borrower and one item over a lending period.
//
// BorrowerName and ItemName are display names reported alongside the
// references. When a reference arrives as a bare name instead of an id,
// the matching ID is zero and only the name is set.
type Transaction struct {
	shared.BaseAggregateRoot
	ItemID       int64
	BorrowerID   int64
	ItemName     string
	BorrowerName string
	DateIssued   shared.Date
	DueDate      shared.Date
	DateReturned *shared.Date
	Status       Status
}

// NewTransaction creates a borrowing of item by borrower. The status is
// derived from the dates as of today.
func NewTransaction(itemID, borrowerID int64, issued, due shared.Date, today shared.Date) (*Transaction, error) {
	if itemID <= 0 {
		return nil, shared.NewFieldError("INVALID_ITEM", "item", "This field is required.")
	}
	if borrowerID <= 0 {
		return nil, shared.NewFieldError("INVALID_BORROWER", "borrower", "This field is required.")
	}
	if issued.IsZero() {
		return nil, shared.NewFieldError("INVALID_DATE", "date_issued", "This field is required.")
	}
	if due.IsZero() {
		return nil, shared.NewFieldError("INVALID_DATE", "due_date", "This field is required.")
	}

	t := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		BorrowerID:        borrowerID,
		DateIssued:        issued,
		DueDate:           due,
	}
	t.RefreshStatus(today)
	t.AddDomainEvent(NewTransactionCreatedEvent(t))
	return t, nil
}

// RefreshStatus recomputes the status: returned when a return date is
// recorded, overdue when today is past the due date, borrowed otherwise.
// It reports whether the status changed.
func (t *Transaction) RefreshStatus(today shared.Date) bool {
	next := StatusBorrowed
	switch {
	case t.DateReturned != nil && !t.DateReturned.IsZero():
		next = StatusReturned
	case today.After(t.DueDate):
		next = StatusOverdue
	}
	if next == t.Status {
		return false
	}
	previous := t.Status
	t.Status = next
	t.UpdatedAt = time.Now()
	if previous != "" {
		t.AddDomainEvent(NewTransactionStatusChangedEvent(t, previous))
	}
	return true
}

// Reschedule changes the lending period
func (t *Transaction) Reschedule(issued, due shared.Date, today shared.Date) error {
	if issued.IsZero() {
		return shared.NewFieldError("INVALID_DATE", "date_issued", "This field is required.")
	}
	if due.IsZero() {
		return shared.NewFieldError("INVALID_DATE", "due_date", "This field is required.")
	}
	t.DateIssued = issued
	t.DueDate = due
	t.UpdatedAt = time.Now()
	t.RefreshStatus(today)
	return nil
}

// Reassign points the transaction at another item or borrower
func (t *Transaction) Reassign(itemID, borrowerID int64) error {
	if itemID <= 0 {
		return shared.NewFieldError("INVALID_ITEM", "item", "This field is required.")
	}
	if borrowerID <= 0 {
		return shared.NewFieldError("INVALID_BORROWER", "borrower", "This field is required.")
	}
	t.ItemID = itemID
	t.BorrowerID = borrowerID
	t.UpdatedAt = time.Now()
	return nil
}

// MarkReturned records the return date. A nil date clears a previous return.
func (t *Transaction) MarkReturned(on *shared.Date, today shared.Date) error {
	if on != nil && on.IsZero() {
		on = nil
	}
	if on != nil && on.Before(t.DateIssued) {
		return shared.NewFieldError("INVALID_DATE", "date_returned", "Return date cannot be before the issue date.")
	}
	t.DateReturned = on
	t.UpdatedAt = time.Now()
	t.RefreshStatus(today)
	return nil
}

// IsReturned reports whether the item has been handed back
func (t *Transaction) IsReturned() bool {
	return t.Status == StatusReturned || (t.DateReturned != nil && !t.DateReturned.IsZero())
}

// IsOverdueOn reports whether the transaction is past due on the given date
func (t *Transaction) IsOverdueOn(today shared.Date) bool {
	if t.IsReturned() {
		return false
	}
	return t.DueDate.Before(today)
}
