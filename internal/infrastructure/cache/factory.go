package cache

import (
	"fmt"

	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates cache stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStore creates a process-local store
func (f *StoreFactory) CreateInMemoryStore() *InMemoryStore {
	return NewInMemoryStore(WithMaxEntries(f.cacheConfig.MaxEntries))
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise an in-memory store if fallback is allowed
func (f *StoreFactory) CreateStore() (Store, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory record cache")
		return f.CreateInMemoryStore(), nil
	}

	store, err := NewRedisStore(f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis record cache", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis store: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory record cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return f.CreateInMemoryStore(), nil
}

// CreateRecordCache builds a RecordCache from configuration; opts are applied last.
// It returns nil when caching is disabled.
func (f *StoreFactory) CreateRecordCache(opts ...RecordCacheOption) (*RecordCache, error) {
	if !f.cacheConfig.Enabled {
		return nil, nil
	}
	store, err := f.CreateStore()
	if err != nil {
		return nil, err
	}
	base := []RecordCacheOption{
		WithKeyPrefix(f.cacheConfig.KeyPrefix),
		WithTTL(f.cacheConfig.TTL),
		WithCacheLogger(f.logger),
	}
	return NewRecordCache(store, append(base, opts...)...), nil
}
