package directory

import (
	"context"
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*borrowing.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*borrowing.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]borrowing.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]borrowing.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *borrowing.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*borrowing.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]borrowing.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]borrowing.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *borrowing.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id int64) (*borrowing.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*borrowing.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]borrowing.Transaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]borrowing.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindPastDue(ctx context.Context, today shared.Date) ([]borrowing.Transaction, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]borrowing.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *borrowing.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mapCache is an in-process RecordCache for tests
type mapCache struct {
	customers map[int64]borrowing.Customer
	items     map[int64]borrowing.Item
}

func newMapCache() *mapCache {
	return &mapCache{customers: map[int64]borrowing.Customer{}, items: map[int64]borrowing.Item{}}
}

func (c *mapCache) GetCustomer(_ context.Context, id int64) (*borrowing.Customer, bool) {
	v, ok := c.customers[id]
	return &v, ok
}
func (c *mapCache) SetCustomer(_ context.Context, v *borrowing.Customer) { c.customers[v.ID] = *v }
func (c *mapCache) InvalidateCustomer(_ context.Context, id int64)       { delete(c.customers, id) }
func (c *mapCache) GetItem(_ context.Context, id int64) (*borrowing.Item, bool) {
	v, ok := c.items[id]
	return &v, ok
}
func (c *mapCache) SetItem(_ context.Context, v *borrowing.Item) { c.items[v.ID] = *v }
func (c *mapCache) InvalidateItem(_ context.Context, id int64)   { delete(c.items, id) }

func fixedClock(date string) func() time.Time {
	d := shared.MustParseDate(date)
	return func() time.Time { return d.Time(time.UTC).Add(15 * time.Hour) }
}

func customerFixture(id int64, first, email string) *borrowing.Customer {
	return &borrowing.Customer{
		BaseEntity: shared.BaseEntity{ID: id, CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		FirstName:  first,
		LastName:   "Tester",
		Email:      email,
	}
}

func itemFixture(id int64, name string) *borrowing.Item {
	return &borrowing.Item{
		BaseEntity: shared.BaseEntity{ID: id},
		Name:       name,
	}
}
