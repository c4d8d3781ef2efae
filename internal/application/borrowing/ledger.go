package borrowing

import "time"

// Ledger is the caller's in-memory list of borrowings, in fetch and
// insertion order. It is not safe for concurrent use.
type Ledger struct {
	entries []Borrowing
}

// NewLedger creates a ledger holding a copy of entries
func NewLedger(entries ...Borrowing) *Ledger {
	l := &Ledger{}
	l.Replace(entries)
	return l
}

// Replace swaps the contents for a copy of entries, typically the result of ListBorrowings
func (l *Ledger) Replace(entries []Borrowing) {
	l.entries = append(make([]Borrowing, 0, len(entries)), entries...)
}

// Append adds a newly created borrowing at the end
func (l *Ledger) Append(b Borrowing) {
	l.entries = append(l.entries, b)
}

// All returns a copy of the entries
func (l *Ledger) All() []Borrowing {
	return append(make([]Borrowing, 0, len(l.entries)), l.entries...)
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Clear empties the local list. Records held by the Directory are not deleted
// and reappear on the next ListBorrowings.
func (l *Ledger) Clear() {
	l.entries = nil
}

// Dashboard classifies the entries relative to now
func (l *Ledger) Dashboard(now time.Time) Dashboard {
	return Classify(l.entries, now, 0)
}
