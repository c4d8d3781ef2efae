package borrowing

import (
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

const (
	// DueSoonWindowDays is the inclusive number of days before a due date
	// during which a transaction counts as due soon.
	DueSoonWindowDays = 3

	// DefaultRecentLimit is the number of transactions RecentTransactions
	// returns when no positive limit is given.
	DefaultRecentLimit = 5
)

// All classification compares calendar dates only. now is reduced to its
// calendar date in its own location before comparing against due dates.

// IsOverdue reports whether t's due date is strictly before the date of now.
// Returned transactions are never overdue.
func IsOverdue(t Transaction, now time.Time) bool {
	return t.IsOverdueOn(shared.DateOf(now))
}

// IsDueSoon reports whether t falls due between the date of now and
// DueSoonWindowDays later, both ends inclusive. A transaction due today is
// due soon, not overdue.
func IsDueSoon(t Transaction, now time.Time) bool {
	if t.IsReturned() {
		return false
	}
	days := shared.DaysBetween(shared.DateOf(now), t.DueDate)
	return days >= 0 && days <= DueSoonWindowDays
}

// RecentTransactions returns the last n entries of list, most recent first.
// n <= 0 means DefaultRecentLimit. The input is not modified.
func RecentTransactions[T any](list []T, n int) []T {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	if n > len(list) {
		n = len(list)
	}
	recent := make([]T, 0, n)
	for i := len(list) - 1; i >= len(list)-n; i-- {
		recent = append(recent, list[i])
	}
	return recent
}

// Buckets is the dashboard view of a transaction list. Overdue and DueSoon
// are disjoint; Recent may overlap either.
type Buckets struct {
	Overdue []Transaction
	DueSoon []Transaction
	Recent  []Transaction
}

// Classify partitions list relative to now. recent is the RecentTransactions limit.
func Classify(list []Transaction, now time.Time, recent int) Buckets {
	b := Buckets{
		Overdue: make([]Transaction, 0),
		DueSoon: make([]Transaction, 0),
	}
	for _, t := range list {
		switch {
		case IsOverdue(t, now):
			b.Overdue = append(b.Overdue, t)
		case IsDueSoon(t, now):
			b.DueSoon = append(b.DueSoon, t)
		}
	}
	b.Recent = RecentTransactions(list, recent)
	return b
}
