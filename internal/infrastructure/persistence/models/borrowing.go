package models

import (
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// CustomerModel is the persistence model for the Customer entity
type CustomerModel struct {
	BaseModel
	FirstName   string  `gorm:"type:varchar(50);not null"`
	LastName    string  `gorm:"type:varchar(50);not null"`
	Email       string  `gorm:"type:varchar(254);not null;uniqueIndex:idx_customers_email"`
	PhoneNumber *string `gorm:"type:varchar(15)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *borrowing.Customer {
	c := &borrowing.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
	}
	if m.PhoneNumber != nil {
		c.PhoneNumber = *m.PhoneNumber
	}
	return c
}

// CustomerModelFromDomain creates a model from a domain Customer
func CustomerModelFromDomain(c *borrowing.Customer) *CustomerModel {
	m := &CustomerModel{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	if c.PhoneNumber != "" {
		phone := c.PhoneNumber
		m.PhoneNumber = &phone
	}
	return m
}

// ItemModel is the persistence model for the Item entity
type ItemModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the model to a domain Item
func (m *ItemModel) ToDomain() *borrowing.Item {
	return &borrowing.Item{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// ItemModelFromDomain creates a model from a domain Item
func ItemModelFromDomain(i *borrowing.Item) *ItemModel {
	m := &ItemModel{
		Name:        i.Name,
		Description: i.Description,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// TransactionModel is the persistence model for the borrowing Transaction aggregate.
// Borrower and Item are loaded through joins for their display names.
type TransactionModel struct {
	BaseModel
	ItemID       int64          `gorm:"not null;index"`
	BorrowerID   int64          `gorm:"not null;index"`
	DateIssued   shared.Date    `gorm:"type:date;not null"`
	DueDate      shared.Date    `gorm:"type:date;not null;index"`
	DateReturned *shared.Date   `gorm:"type:date"`
	Status       string         `gorm:"type:varchar(20);not null;default:'borrowed';index"`
	Item         *ItemModel     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Borrower     *CustomerModel `gorm:"foreignKey:BorrowerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "borrowing_transactions"
}

// ToDomain converts the model to a domain Transaction
func (m *TransactionModel) ToDomain() *borrowing.Transaction {
	t := &borrowing.Transaction{
		ItemID:       m.ItemID,
		BorrowerID:   m.BorrowerID,
		DateIssued:   m.DateIssued,
		DueDate:      m.DueDate,
		DateReturned: m.DateReturned,
		Status:       borrowing.Status(m.Status),
	}
	t.BaseEntity = m.BaseModel.ToDomain()
	if m.Item != nil {
		t.ItemName = m.Item.Name
	}
	if m.Borrower != nil {
		t.BorrowerName = m.Borrower.FirstName
	}
	return t
}

// TransactionModelFromDomain creates a model from a domain Transaction
func TransactionModelFromDomain(t *borrowing.Transaction) *TransactionModel {
	m := &TransactionModel{
		ItemID:       t.ItemID,
		BorrowerID:   t.BorrowerID,
		DateIssued:   t.DateIssued,
		DueDate:      t.DueDate,
		DateReturned: t.DateReturned,
		Status:       string(t.Status),
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
