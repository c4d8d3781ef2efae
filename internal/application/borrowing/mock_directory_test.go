package borrowing

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockDirectory is a mock implementation of Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) SearchCustomers(ctx context.Context, query string) ([]borrowing.Customer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]borrowing.Customer), args.Error(1)
}

func (m *MockDirectory) CreateCustomer(ctx context.Context, in CustomerInput) (*borrowing.Customer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Customer), args.Error(1)
}

func (m *MockDirectory) GetCustomer(ctx context.Context, id int64) (*borrowing.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Customer), args.Error(1)
}

func (m *MockDirectory) CreateItem(ctx context.Context, in ItemInput) (*borrowing.Item, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Item), args.Error(1)
}

func (m *MockDirectory) GetItem(ctx context.Context, id int64) (*borrowing.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Item), args.Error(1)
}

func (m *MockDirectory) ListTransactions(ctx context.Context) ([]borrowing.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]borrowing.Transaction), args.Error(1)
}

func (m *MockDirectory) CreateTransaction(ctx context.Context, in TransactionInput) (*borrowing.Transaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Transaction), args.Error(1)
}

// methods returns the names of the recorded calls in order
func (m *MockDirectory) methods() []string {
	out := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.Method)
	}
	return out
}

var _ Directory = (*MockDirectory)(nil)

func newCustomer(id int64, first, email string) *borrowing.Customer {
	c := &borrowing.Customer{FirstName: first, LastName: "Tester", Email: email}
	c.ID = id
	return c
}

func newItem(id int64, name string) *borrowing.Item {
	item := &borrowing.Item{Name: name, Description: name + " description"}
	item.ID = id
	return item
}

func newTransaction(id, itemID, borrowerID int64, due string) *borrowing.Transaction {
	t := &borrowing.Transaction{
		ItemID:     itemID,
		BorrowerID: borrowerID,
		DateIssued: shared.MustParseDate("2024-06-01"),
		DueDate:    shared.MustParseDate(due),
		Status:     borrowing.StatusBorrowed,
	}
	t.ID = id
	return t
}
