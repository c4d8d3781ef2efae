package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const defaultRecordTTL = 5 * time.Minute

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordCache caches customer and item records by id.
// Cache failures are logged and treated as misses.
type RecordCache struct {
	store  Store
	prefix string
	ttl    time.Duration
	logger *zap.Logger
	// observe is told about every lookup; kind is "customer" or "item"
	observe func(kind string, hit bool)
}

// RecordCacheOption configures a RecordCache
type RecordCacheOption func(*RecordCache)

// WithKeyPrefix namespaces every key
func WithKeyPrefix(prefix string) RecordCacheOption {
	return func(c *RecordCache) {
		c.prefix = prefix
	}
}

// WithTTL sets the entry lifetime
func WithTTL(ttl time.Duration) RecordCacheOption {
	return func(c *RecordCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RecordCacheOption {
	return func(c *RecordCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLookupObserver reports every lookup outcome, e.g. to a metrics counter
func WithLookupObserver(observe func(kind string, hit bool)) RecordCacheOption {
	return func(c *RecordCache) {
		if observe != nil {
			c.observe = observe
		}
	}
}

// NewRecordCache creates a record cache over store
func NewRecordCache(store Store, opts ...RecordCacheOption) *RecordCache {
	c := &RecordCache{
		store:   store,
		ttl:     defaultRecordTTL,
		logger:  zap.NewNop(),
		observe: func(string, bool) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RecordCache) customerKey(id int64) string {
	return c.prefix + "customer:" + strconv.FormatInt(id, 10)
}

func (c *RecordCache) itemKey(id int64) string {
	return c.prefix + "item:" + strconv.FormatInt(id, 10)
}

// GetCustomer returns a cached customer
func (c *RecordCache) GetCustomer(ctx context.Context, id int64) (*borrowing.Customer, bool) {
	var customer borrowing.Customer
	hit := c.get(ctx, c.customerKey(id), &customer)
	c.observe("customer", hit)
	if !hit {
		return nil, false
	}
	return &customer, true
}

// SetCustomer caches a customer
func (c *RecordCache) SetCustomer(ctx context.Context, customer *borrowing.Customer) {
	if customer == nil || customer.ID == 0 {
		return
	}
	c.set(ctx, c.customerKey(customer.ID), customer)
}

// InvalidateCustomer drops a cached customer
func (c *RecordCache) InvalidateCustomer(ctx context.Context, id int64) {
	c.delete(ctx, c.customerKey(id))
}

// GetItem returns a cached item
func (c *RecordCache) GetItem(ctx context.Context, id int64) (*borrowing.Item, bool) {
	var item borrowing.Item
	hit := c.get(ctx, c.itemKey(id), &item)
	c.observe("item", hit)
	if !hit {
		return nil, false
	}
	return &item, true
}

// SetItem caches an item
func (c *RecordCache) SetItem(ctx context.Context, item *borrowing.Item) {
	if item == nil || item.ID == 0 {
		return
	}
	c.set(ctx, c.itemKey(item.ID), item)
}

// InvalidateItem drops a cached item
func (c *RecordCache) InvalidateItem(ctx context.Context, id int64) {
	c.delete(ctx, c.itemKey(id))
}

// Close releases the underlying store
func (c *RecordCache) Close() error {
	return c.store.Close()
}

func (c *RecordCache) get(ctx context.Context, key string, dst any) bool {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Record cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		c.logger.Debug("Record cache miss", zap.String("key", key))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Dropping corrupt record cache entry", zap.String("key", key), zap.Error(err))
		_ = c.store.Delete(ctx, key)
		return false
	}
	return true
}

func (c *RecordCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to encode record for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Record cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RecordCache) delete(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Warn("Record cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
