package borrowing

import (
	"context"
	"fmt"
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/borrowtrack/backend/internal/application/borrowing"

	// DefaultEnrichConcurrency bounds in-flight lookups during ListBorrowings
	DefaultEnrichConcurrency = 8
)

// BorrowingService records new borrowings and loads the enriched list
type BorrowingService struct {
	directory   Directory
	resolver    *CustomerResolver
	validate    *validator.Validate
	logger      *zap.Logger
	tracer      trace.Tracer
	clock       func() time.Time
	concurrency int
}

// Option configures a BorrowingService
type Option func(*BorrowingService)

// WithClock overrides the time source used to default the issue date
func WithClock(clock func() time.Time) Option {
	return func(s *BorrowingService) {
		s.clock = clock
	}
}

// WithEnrichConcurrency sets the maximum number of concurrent lookups
func WithEnrichConcurrency(n int) Option {
	return func(s *BorrowingService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTracer sets the tracer used for spans
func WithTracer(tracer trace.Tracer) Option {
	return func(s *BorrowingService) {
		s.tracer = tracer
	}
}

// NewBorrowingService creates a new BorrowingService
func NewBorrowingService(directory Directory, logger *zap.Logger, opts ...Option) *BorrowingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BorrowingService{
		directory:   directory,
		resolver:    NewCustomerResolver(directory, logger),
		validate:    newValidator(),
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
		clock:       time.Now,
		concurrency: DefaultEnrichConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver returns the customer resolver used by CreateBorrowing
func (s *BorrowingService) Resolver() *CustomerResolver {
	return s.resolver
}

// CreateBorrowing resolves the borrower, creates the item, then creates the
// transaction, strictly in that order. A failed step aborts the rest and
// leaves earlier records in place.
func (s *BorrowingService) CreateBorrowing(ctx context.Context, in CreateBorrowingInput) (*Borrowing, error) {
	if in.DateIssued.IsZero() {
		in.DateIssued = shared.DateOf(s.clock())
	}
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "BorrowingService.CreateBorrowing",
		trace.WithAttributes(attribute.String("borrower.email", in.Borrower.Email)))
	defer span.End()

	customer, err := s.resolver.Resolve(ctx, in.Borrower)
	if err != nil {
		return nil, s.creationFailed(span, StepCustomer, err)
	}

	item, err := s.directory.CreateItem(ctx, in.Item)
	if err != nil {
		return nil, s.creationFailed(span, StepItem, err)
	}

	txn, err := s.directory.CreateTransaction(ctx, TransactionInput{
		ItemID:     item.ID,
		BorrowerID: customer.ID,
		DateIssued: in.DateIssued,
		DueDate:    in.DueDate,
	})
	if err != nil {
		return nil, s.creationFailed(span, StepTransaction, err)
	}

	if txn.BorrowerName == "" {
		txn.BorrowerName = customer.FirstName
	}
	if txn.ItemName == "" {
		txn.ItemName = item.Name
	}

	span.SetAttributes(attribute.Int64("transaction.id", txn.ID))
	s.logger.Info("Borrowing created",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("customer_id", customer.ID),
		zap.Int64("item_id", item.ID),
		zap.String("due_date", txn.DueDate.String()))

	return &Borrowing{Transaction: *txn, Customer: *customer, Item: *item}, nil
}

func (s *BorrowingService) validateInput(in CreateBorrowingInput) error {
	if err := s.validate.Struct(in); err != nil {
		return toValidationError(err)
	}
	if in.DueDate.IsZero() {
		return &ValidationError{Field: "due_date", Message: "This field is required."}
	}
	return nil
}

func (s *BorrowingService) creationFailed(span trace.Span, step Step, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(step))
	s.logger.Warn("Borrowing creation failed",
		zap.String("step", string(step)),
		zap.Error(err))
	return &CreationError{Step: step, Err: err}
}

// ListBorrowings fetches every transaction and attaches its customer and item.
// Lookups run concurrently; the result keeps the fetched order. A failed
// lookup swaps in a placeholder instead of failing the call.
func (s *BorrowingService) ListBorrowings(ctx context.Context) ([]Borrowing, error) {
	ctx, span := s.tracer.Start(ctx, "BorrowingService.ListBorrowings")
	defer span.End()

	txns, err := s.directory.ListTransactions(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list transactions")
		return nil, &FetchError{Err: err}
	}

	out := make([]Borrowing, len(txns))
	customerDegraded := make([]bool, len(txns))
	itemDegraded := make([]bool, len(txns))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range txns {
		out[i].Transaction = txns[i]
		g.Go(func() error {
			out[i].Customer, customerDegraded[i] = s.lookupCustomer(ctx, txns[i])
			return nil
		})
		g.Go(func() error {
			out[i].Item, itemDegraded[i] = s.lookupItem(ctx, txns[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Err: err}
	}

	degraded := 0
	for i := range out {
		out[i].Degraded = customerDegraded[i] || itemDegraded[i]
		if out[i].Degraded {
			degraded++
		}
	}
	span.SetAttributes(
		attribute.Int("transactions.count", len(out)),
		attribute.Int("transactions.degraded", degraded))

	return out, nil
}

func (s *BorrowingService) lookupCustomer(ctx context.Context, txn borrowing.Transaction) (borrowing.Customer, bool) {
	if txn.BorrowerID <= 0 {
		s.degraded(txn, "borrower", fmt.Errorf("%w: borrower reference %q has no id", ErrEnrichmentDegraded, txn.BorrowerName))
		return placeholderCustomer(0, txn.BorrowerName), true
	}
	c, err := s.directory.GetCustomer(ctx, txn.BorrowerID)
	if err != nil {
		s.degraded(txn, "borrower", fmt.Errorf("%w: %w", ErrEnrichmentDegraded, err))
		return placeholderCustomer(txn.BorrowerID, ""), true
	}
	return *c, false
}

func (s *BorrowingService) lookupItem(ctx context.Context, txn borrowing.Transaction) (borrowing.Item, bool) {
	if txn.ItemID <= 0 {
		s.degraded(txn, "item", fmt.Errorf("%w: item reference %q has no id", ErrEnrichmentDegraded, txn.ItemName))
		return placeholderItem(0, txn.ItemName), true
	}
	item, err := s.directory.GetItem(ctx, txn.ItemID)
	if err != nil {
		s.degraded(txn, "item", fmt.Errorf("%w: %w", ErrEnrichmentDegraded, err))
		return placeholderItem(txn.ItemID, ""), true
	}
	return *item, false
}

func (s *BorrowingService) degraded(txn borrowing.Transaction, ref string, err error) {
	s.logger.Warn("Using placeholder for transaction reference",
		zap.Int64("transaction_id", txn.ID),
		zap.String("reference", ref),
		zap.Error(err))
}
