package borrowing

import (
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
)

// UnknownName is shown in place of a customer or item that could not be loaded
const UnknownName = "Unknown"

// Borrowing is a transaction joined with its full customer and item.
// Degraded is set when either side is a placeholder.
type Borrowing struct {
	borrowing.Transaction
	Customer borrowing.Customer
	Item     borrowing.Item
	Degraded bool
}

// BorrowerDisplayName returns the customer's full name
func (b Borrowing) BorrowerDisplayName() string {
	return b.Customer.FullName()
}

func placeholderCustomer(id int64, fallback string) borrowing.Customer {
	c := borrowing.Customer{FirstName: UnknownName}
	c.ID = id
	if fallback != "" {
		c.FirstName = fallback
	}
	return c
}

func placeholderItem(id int64, fallback string) borrowing.Item {
	item := borrowing.Item{Name: UnknownName}
	item.ID = id
	if fallback != "" {
		item.Name = fallback
	}
	return item
}

// Dashboard groups borrowings for display
type Dashboard struct {
	Overdue []Borrowing
	DueSoon []Borrowing
	Recent  []Borrowing
}

// Classify builds the dashboard view of list relative to now. recent limits
// the Recent bucket; zero means borrowing.DefaultRecentLimit.
func Classify(list []Borrowing, now time.Time, recent int) Dashboard {
	d := Dashboard{
		Overdue: make([]Borrowing, 0),
		DueSoon: make([]Borrowing, 0),
	}
	for _, b := range list {
		switch {
		case borrowing.IsOverdue(b.Transaction, now):
			d.Overdue = append(d.Overdue, b)
		case borrowing.IsDueSoon(b.Transaction, now):
			d.DueSoon = append(d.DueSoon, b)
		}
	}
	d.Recent = borrowing.RecentTransactions(list, recent)
	return d
}
