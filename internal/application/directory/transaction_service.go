package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/borrowtrack/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TransactionService handles borrowing transactions of the directory.
// Status is recomputed from the dates on every save.
type TransactionService struct {
	txRepo       borrowing.TransactionRepository
	customerRepo borrowing.CustomerRepository
	itemRepo     borrowing.ItemRepository
	opts         serviceOptions
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txRepo borrowing.TransactionRepository,
	customerRepo borrowing.CustomerRepository,
	itemRepo borrowing.ItemRepository,
	opts ...Option,
) *TransactionService {
	return &TransactionService{
		txRepo:       txRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		opts:         newOptions(opts),
	}
}

// Create records a new borrowing
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "create",
		telemetry.WithAttribute(telemetry.SpanAttrItemID, req.Item),
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, req.Borrower),
	)
	defer span.End()

	if err := s.checkReferences(ctx, req.Item, req.Borrower); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	today := s.opts.today()
	txn, err := borrowing.NewTransaction(req.Item, req.Borrower, req.DateIssued, req.DueDate, today)
	if err != nil {
		return nil, err
	}
	if req.DateReturned != nil {
		if err := txn.MarkReturned(req.DateReturned, today); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, txn, today)
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id int64) (*TransactionResponse, error) {
	txn, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn, s.opts.today())
	return &response, nil
}

// List lists transactions matching the filter
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, error) {
	f := listFilter(filter.Search, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.Status != "" {
		f.Filters[borrowing.FilterStatus] = filter.Status
	}
	if filter.Borrower > 0 {
		f.Filters[borrowing.FilterBorrower] = filter.Borrower
	}
	if filter.Item > 0 {
		f.Filters[borrowing.FilterItem] = filter.Item
	}
	return s.list(ctx, f)
}

// ListOverdue lists transactions whose stored status is overdue
func (s *TransactionService) ListOverdue(ctx context.Context) ([]TransactionResponse, error) {
	return s.listByStatus(ctx, borrowing.StatusOverdue)
}

// ListActive lists transactions whose stored status is borrowed
func (s *TransactionService) ListActive(ctx context.Context) ([]TransactionResponse, error) {
	return s.listByStatus(ctx, borrowing.StatusBorrowed)
}

// Update applies the fields present in req and recomputes the status
func (s *TransactionService) Update(ctx context.Context, id int64, req UpdateTransactionRequest) (*TransactionResponse, error) {
	txn, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	today := s.opts.today()

	itemID, borrowerID := txn.ItemID, txn.BorrowerID
	if req.Item != nil {
		itemID = *req.Item
	}
	if req.Borrower != nil {
		borrowerID = *req.Borrower
	}
	if itemID != txn.ItemID || borrowerID != txn.BorrowerID {
		if err := s.checkReferences(ctx, itemID, borrowerID); err != nil {
			return nil, err
		}
		if err := txn.Reassign(itemID, borrowerID); err != nil {
			return nil, err
		}
	}

	if req.DateIssued != nil || req.DueDate != nil {
		issued, due := txn.DateIssued, txn.DueDate
		if req.DateIssued != nil {
			issued = *req.DateIssued
		}
		if req.DueDate != nil {
			due = *req.DueDate
		}
		if err := txn.Reschedule(issued, due, today); err != nil {
			return nil, err
		}
	}

	switch {
	case req.DateReturned != nil:
		if err := txn.MarkReturned(req.DateReturned, today); err != nil {
			return nil, err
		}
	case req.ClearReturned:
		if err := txn.MarkReturned(nil, today); err != nil {
			return nil, err
		}
	default:
		txn.RefreshStatus(today)
	}

	return s.save(ctx, txn, today)
}

// Delete deletes a transaction
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	return s.txRepo.Delete(ctx, id)
}

// RefreshOverdue marks borrowed transactions past their due date as overdue.
// It returns the number of transactions updated.
func (s *TransactionService) RefreshOverdue(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "refresh_overdue")
	defer span.End()

	today := s.opts.today()
	pastDue, err := s.txRepo.FindPastDue(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("find past due transactions: %w", err)
	}

	updated := 0
	for i := range pastDue {
		txn := &pastDue[i]
		if !txn.RefreshStatus(today) {
			continue
		}
		if err := s.txRepo.Save(ctx, txn); err != nil {
			telemetry.RecordError(span, err)
			return updated, fmt.Errorf("save transaction %d: %w", txn.ID, err)
		}
		s.publishEvents(ctx, txn)
		updated++
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, updated)

	if updated > 0 {
		s.opts.logger.Info("Marked transactions overdue",
			zap.Int("count", updated),
			zap.String("today", today.String()))
	}
	return updated, nil
}

func (s *TransactionService) listByStatus(ctx context.Context, status borrowing.Status) ([]TransactionResponse, error) {
	f := shared.DefaultFilter()
	f.Filters[borrowing.FilterStatus] = string(status)
	return s.list(ctx, f)
}

func (s *TransactionService) list(ctx context.Context, filter shared.Filter) ([]TransactionResponse, error) {
	txns, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := s.opts.today()
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i], today)
	}
	return responses, nil
}

// save persists txn and reloads it so the response carries the display names
func (s *TransactionService) save(ctx context.Context, txn *borrowing.Transaction, today shared.Date) (*TransactionResponse, error) {
	if err := s.txRepo.Save(ctx, txn); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, txn)

	saved, err := s.txRepo.FindByID(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(saved, today)
	return &response, nil
}

func (s *TransactionService) checkReferences(ctx context.Context, itemID, borrowerID int64) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return invalidPK("item", itemID)
		}
		return err
	}
	if _, err := s.customerRepo.FindByID(ctx, borrowerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return invalidPK("borrower", borrowerID)
		}
		return err
	}
	return nil
}

func invalidPK(field string, id int64) error {
	return shared.NewFieldError("INVALID_INPUT", field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

// publishEvents logs, forwards and clears the events recorded on the aggregate
func (s *TransactionService) publishEvents(ctx context.Context, txn *borrowing.Transaction) {
	txn.AssignEventAggregateID(txn.ID)
	events := txn.GetDomainEvents()
	for _, event := range events {
		fields := []zap.Field{
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.Int64("transaction_id", txn.ID),
		}
		if changed, ok := event.(*borrowing.TransactionStatusChangedEvent); ok {
			fields = append(fields, zap.String("from", string(changed.From)), zap.String("to", string(changed.To)))
		}
		s.opts.logger.Info("Domain event", fields...)
	}
	if len(events) > 0 {
		if err := s.opts.events.Publish(ctx, events...); err != nil {
			s.opts.logger.Warn("Failed to publish domain events", zap.Int64("transaction_id", txn.ID), zap.Error(err))
		}
	}
	txn.ClearDomainEvents()
}
