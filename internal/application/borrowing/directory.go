package borrowing

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Directory is the remote service that persists customers, items and
// transactions. Implementations report a missing record as an error; the
// core does not distinguish "not found" from other lookup failures.
type Directory interface {
	// SearchCustomers returns customers matching query by name or email (substring match)
	SearchCustomers(ctx context.Context, query string) ([]borrowing.Customer, error)

	// CreateCustomer creates a customer
	CreateCustomer(ctx context.Context, in CustomerInput) (*borrowing.Customer, error)

	// GetCustomer fetches a customer by id
	GetCustomer(ctx context.Context, id int64) (*borrowing.Customer, error)

	// CreateItem creates an item
	CreateItem(ctx context.Context, in ItemInput) (*borrowing.Item, error)

	// GetItem fetches an item by id
	GetItem(ctx context.Context, id int64) (*borrowing.Item, error)

	// ListTransactions returns every transaction in the order the service lists them
	ListTransactions(ctx context.Context) ([]borrowing.Transaction, error)

	// CreateTransaction creates a transaction linking an existing customer and item
	CreateTransaction(ctx context.Context, in TransactionInput) (*borrowing.Transaction, error)
}

// CustomerInput carries borrower identity fields
type CustomerInput struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=254"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
}

// ItemInput carries the fields of a new item
type ItemInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// TransactionInput references an already created customer and item
type TransactionInput struct {
	ItemID     int64       `json:"item"`
	BorrowerID int64       `json:"borrower"`
	DateIssued shared.Date `json:"date_issued"`
	DueDate    shared.Date `json:"due_date"`
}

// CreateBorrowingInput is everything needed to record a new borrowing.
// A zero DateIssued defaults to today.
type CreateBorrowingInput struct {
	Borrower   CustomerInput `json:"borrower"`
	Item       ItemInput     `json:"item"`
	DateIssued shared.Date   `json:"date_issued"`
	DueDate    shared.Date   `json:"due_date"`
}
