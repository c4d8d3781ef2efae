package directoryclient

import (
	"bytes"
	"strconv"
	"time"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Ref is a foreign-key field as the directory sends it: normally a numeric
// id, but some deployments send the referenced record's name instead
type Ref struct {
	ID   int64
	Name string
}

// UnmarshalJSON accepts a number, a numeric string or a name string
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			*r = Ref{ID: id}
			return nil
		}
		*r = Ref{Name: s}
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = Ref{ID: id}
	return nil
}

// MarshalJSON writes the id when known, the name otherwise
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID != 0 || r.Name == "" {
		return []byte(strconv.FormatInt(r.ID, 10)), nil
	}
	return json.Marshal(r.Name)
}

type customerWire struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w customerWire) toDomain() borrowing.Customer {
	c := borrowing.Customer{
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
	}
	c.ID = w.ID
	c.CreatedAt = w.CreatedAt
	if w.PhoneNumber != nil {
		c.PhoneNumber = *w.PhoneNumber
	}
	return c
}

type itemWire struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w itemWire) toDomain() borrowing.Item {
	i := borrowing.Item{Name: w.Name}
	i.ID = w.ID
	i.CreatedAt = w.CreatedAt
	if w.Description != nil {
		i.Description = *w.Description
	}
	return i
}

type transactionWire struct {
	ID           int64        `json:"id"`
	Item         Ref          `json:"item"`
	Borrower     Ref          `json:"borrower"`
	BorrowerName string       `json:"borrower_name"`
	ItemName     string       `json:"item_name"`
	DateIssued   shared.Date  `json:"date_issued"`
	DueDate      shared.Date  `json:"due_date"`
	DateReturned *shared.Date `json:"date_returned"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// toDomain maps the wire record; a name-only reference leaves the id at zero
// and carries the name as the display name
func (w transactionWire) toDomain() borrowing.Transaction {
	t := borrowing.Transaction{
		ItemID:       w.Item.ID,
		BorrowerID:   w.Borrower.ID,
		ItemName:     w.ItemName,
		BorrowerName: w.BorrowerName,
		DateIssued:   w.DateIssued,
		DueDate:      w.DueDate,
		DateReturned: w.DateReturned,
		Status:       borrowing.Status(w.Status),
	}
	t.ID = w.ID
	t.CreatedAt = w.CreatedAt
	if t.ItemName == "" {
		t.ItemName = w.Item.Name
	}
	if t.BorrowerName == "" {
		t.BorrowerName = w.Borrower.Name
	}
	return t
}
