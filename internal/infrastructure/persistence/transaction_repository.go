package persistence

import (
	"context"
	"errors"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/borrowtrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const transactionsTable = "borrowing_transactions"

// ErrUnknownReference is returned when a transaction points at a missing item or customer
var ErrUnknownReference = shared.NewDomainError("INVALID_INPUT", "Referenced item or borrower does not exist.")

// GormTransactionRepository implements TransactionRepository using GORM.
// Reads join the item and borrower rows to fill the display names.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Joins("Item").
		Joins("Borrower")
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id int64) (*borrowing.Transaction, error) {
	var model models.TransactionModel
	err := r.joined(ctx).Where(transactionsTable+".id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]borrowing.Transaction, error) {
	var rows []models.TransactionModel
	query := r.applyFilter(r.joined(ctx), filter)
	query = orderBy(query, transactionsTable, filter, transactionSortFields)
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// FindPastDue finds borrowed transactions whose due date is before today
func (r *GormTransactionRepository) FindPastDue(ctx context.Context, today shared.Date) ([]borrowing.Transaction, error) {
	var rows []models.TransactionModel
	err := r.joined(ctx).
		Where(transactionsTable+".status = ?", string(borrowing.StatusBorrowed)).
		Where(transactionsTable+".due_date < ?", today).
		Order(transactionsTable + ".id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// Save creates or updates a transaction and writes the assigned ID back
func (r *GormTransactionRepository) Save(ctx context.Context, txn *borrowing.Transaction) error {
	model := models.TransactionModelFromDomain(txn)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUnknownReference
		}
		return err
	}
	txn.ID = model.ID
	txn.CreatedAt = model.CreatedAt
	txn.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER("Borrower"."first_name") LIKE ? ESCAPE '\' OR LOWER("Borrower"."last_name") LIKE ? ESCAPE '\' OR LOWER("Item"."name") LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case borrowing.FilterStatus:
			query = query.Where(transactionsTable+".status = ?", value)
		case borrowing.FilterBorrower:
			query = query.Where(transactionsTable+".borrower_id = ?", value)
		case borrowing.FilterItem:
			query = query.Where(transactionsTable+".item_id = ?", value)
		}
	}
	return query
}

func toTransactions(rows []models.TransactionModel) []borrowing.Transaction {
	out := make([]borrowing.Transaction, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ borrowing.TransactionRepository = (*GormTransactionRepository)(nil)
