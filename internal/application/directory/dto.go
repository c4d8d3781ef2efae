package directory

import (
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create or fully replace a customer
type CreateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email,max=254"`
	PhoneNumber string `json:"phone_number" binding:"max=15"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=254"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=15"`
}

// ToUpdate turns a full replacement into an update touching every field
func (r CreateCustomerRequest) ToUpdate() UpdateCustomerRequest {
	return UpdateCustomerRequest{
		FirstName:   &r.FirstName,
		LastName:    &r.LastName,
		Email:       &r.Email,
		PhoneNumber: &r.PhoneNumber,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *borrowing.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: nullable(c.PhoneNumber),
		CreatedAt:   c.CreatedAt,
	}
}

// =============================================================================
// Item DTOs
// =============================================================================

// CreateItemRequest represents a request to create or fully replace an item
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateItemRequest represents a partial item update
type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// ToUpdate turns a full replacement into an update touching every field
func (r CreateItemRequest) ToUpdate() UpdateItemRequest {
	return UpdateItemRequest{Name: &r.Name, Description: &r.Description}
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToItemResponse converts a domain item
func ToItemResponse(i *borrowing.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: nullable(i.Description),
		CreatedAt:   i.CreatedAt,
	}
}

// =============================================================================
// Transaction DTOs
// =============================================================================

// CreateTransactionRequest represents a request to create or fully replace a transaction.
// Dates are checked by the domain so that a missing date reports the field name.
type CreateTransactionRequest struct {
	Item         int64        `json:"item" binding:"required,gt=0"`
	Borrower     int64        `json:"borrower" binding:"required,gt=0"`
	DateIssued   shared.Date  `json:"date_issued"`
	DueDate      shared.Date  `json:"due_date"`
	DateReturned *shared.Date `json:"date_returned"`
}

// UpdateTransactionRequest represents a partial transaction update.
// ClearReturned is set when the body carries an explicit null date_returned.
type UpdateTransactionRequest struct {
	Item          *int64       `json:"item" binding:"omitempty,gt=0"`
	Borrower      *int64       `json:"borrower" binding:"omitempty,gt=0"`
	DateIssued    *shared.Date `json:"date_issued"`
	DueDate       *shared.Date `json:"due_date"`
	DateReturned  *shared.Date `json:"date_returned"`
	ClearReturned bool         `json:"-"`
}

// ToUpdate turns a full replacement into an update touching every field
func (r CreateTransactionRequest) ToUpdate() UpdateTransactionRequest {
	return UpdateTransactionRequest{
		Item:          &r.Item,
		Borrower:      &r.Borrower,
		DateIssued:    &r.DateIssued,
		DueDate:       &r.DueDate,
		DateReturned:  r.DateReturned,
		ClearReturned: r.DateReturned == nil,
	}
}

// TransactionResponse represents a borrowing transaction in API responses
type TransactionResponse struct {
	ID           int64        `json:"id"`
	Item         int64        `json:"item"`
	Borrower     int64        `json:"borrower"`
	BorrowerName string       `json:"borrower_name"`
	ItemName     string       `json:"item_name"`
	DateIssued   shared.Date  `json:"date_issued"`
	DueDate      shared.Date  `json:"due_date"`
	DateReturned *shared.Date `json:"date_returned"`
	Status       string       `json:"status"`
	IsOverdue    bool         `json:"is_overdue"`
	CreatedAt    time.Time    `json:"created_at"`
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=borrowed returned overdue"`
	Borrower int64  `form:"borrower" binding:"omitempty,gt=0"`
	Item     int64  `form:"item" binding:"omitempty,gt=0"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToTransactionResponse converts a domain transaction; is_overdue is evaluated as of today
func ToTransactionResponse(t *borrowing.Transaction, today shared.Date) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Item:         t.ItemID,
		Borrower:     t.BorrowerID,
		BorrowerName: t.BorrowerName,
		ItemName:     t.ItemName,
		DateIssued:   t.DateIssued,
		DueDate:      t.DueDate,
		DateReturned: t.DateReturned,
		Status:       string(t.Status),
		IsOverdue:    t.IsOverdueOn(today),
		CreatedAt:    t.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func listFilter(search string, page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = search
	filter.Page = page
	filter.PageSize = pageSize
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
