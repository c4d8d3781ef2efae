package borrowing

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Filter keys understood by TransactionRepository.FindAll
const (
	FilterStatus   = "status"
	FilterBorrower = "borrower"
	FilterItem     = "item"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByEmail finds a customer by exact email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll finds customers whose first name, last name or email contains filter.Search
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer and its transactions
	Delete(ctx context.Context, id int64) error

	// ExistsByEmail checks if a customer with the email exists, ignoring excludeID
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindAll finds items whose name or description contains filter.Search
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item and its transactions
	Delete(ctx context.Context, id int64) error
}

// TransactionRepository defines the interface for borrowing transaction persistence
type TransactionRepository interface {
	// FindByID finds a transaction by its ID, with borrower and item names populated
	FindByID(ctx context.Context, id int64) (*Transaction, error)

	// FindAll finds transactions matching the filter. Search matches borrower
	// names and item name; Filters accepts FilterStatus, FilterBorrower and FilterItem.
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)

	// FindPastDue finds borrowed transactions whose due date is before today
	FindPastDue(ctx context.Context, today shared.Date) ([]Transaction, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, transaction *Transaction) error

	// Delete deletes a transaction
	Delete(ctx context.Context, id int64) error
}
