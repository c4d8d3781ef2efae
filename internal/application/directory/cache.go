package directory

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
)

// RecordCache is a read-through cache for single customer and item lookups.
// Implementations treat their own failures as misses.
type RecordCache interface {
	GetCustomer(ctx context.Context, id int64) (*borrowing.Customer, bool)
	SetCustomer(ctx context.Context, customer *borrowing.Customer)
	InvalidateCustomer(ctx context.Context, id int64)
	GetItem(ctx context.Context, id int64) (*borrowing.Item, bool)
	SetItem(ctx context.Context, item *borrowing.Item)
	InvalidateItem(ctx context.Context, id int64)
}

type nopCache struct{}

func (nopCache) GetCustomer(context.Context, int64) (*borrowing.Customer, bool) { return nil, false }
func (nopCache) SetCustomer(context.Context, *borrowing.Customer)               {}
func (nopCache) InvalidateCustomer(context.Context, int64)                      {}
func (nopCache) GetItem(context.Context, int64) (*borrowing.Item, bool)         { return nil, false }
func (nopCache) SetItem(context.Context, *borrowing.Item)                       {}
func (nopCache) InvalidateItem(context.Context, int64)                          {}
