package directory

import (
	"context"
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type serviceOptions struct {
	cache  RecordCache
	events shared.EventPublisher
	logger *zap.Logger
	clock  func() time.Time
}

// Option configures the directory services
type Option func(*serviceOptions)

// WithRecordCache enables read-through caching of single-record lookups
func WithRecordCache(cache RecordCache) Option {
	return func(o *serviceOptions) {
		if cache != nil {
			o.cache = cache
		}
	}
}

// WithEventPublisher forwards domain events recorded on saved aggregates
func WithEventPublisher(events shared.EventPublisher) Option {
	return func(o *serviceOptions) {
		if events != nil {
			o.events = events
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to derive today's date
func WithClock(clock func() time.Time) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func newOptions(opts []Option) serviceOptions {
	o := serviceOptions{
		cache:  nopCache{},
		events: nopPublisher{},
		logger: zap.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o serviceOptions) today() shared.Date {
	return shared.DateOf(o.clock())
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }
