package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/brianvoe/gofakeit/v7"
)

// Fixtures generates realistic, reproducible test data. Emails carry a
// sequence number so every generated customer is unique within a Fixtures.
type Fixtures struct {
	faker *gofakeit.Faker
	seq   atomic.Int64
}

// NewFixtures creates a generator; the same seed yields the same data
func NewFixtures(seed uint64) *Fixtures {
	return &Fixtures{faker: gofakeit.New(seed)}
}

// Faker exposes the underlying generator for one-off values
func (f *Fixtures) Faker() *gofakeit.Faker {
	return f.faker
}

// CustomerInput returns borrower fields that pass validation
func (f *Fixtures) CustomerInput() appborrowing.CustomerInput {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	n := f.seq.Add(1)
	return appborrowing.CustomerInput{
		FirstName:   first,
		LastName:    last,
		Email:       fmt.Sprintf("%s.%s.%d@example.com", emailPart(first), emailPart(last), n),
		PhoneNumber: f.faker.Numerify("555#######"),
	}
}

// ItemInput returns a named item with a short description
func (f *Fixtures) ItemInput() appborrowing.ItemInput {
	return appborrowing.ItemInput{
		Name:        truncate(f.faker.ProductName(), 100),
		Description: f.faker.Sentence(8),
	}
}

// Customer returns an unsaved domain customer
func (f *Fixtures) Customer() *borrowing.Customer {
	in := f.CustomerInput()
	c, err := borrowing.NewCustomer(in.FirstName, in.LastName, in.Email, in.PhoneNumber)
	if err != nil {
		panic(err)
	}
	return c
}

// Item returns an unsaved domain item
func (f *Fixtures) Item() *borrowing.Item {
	in := f.ItemInput()
	item, err := borrowing.NewItem(in.Name, in.Description)
	if err != nil {
		panic(err)
	}
	return item
}

// BorrowingInput returns a borrowing issued on issued and due after the
// given number of days
func (f *Fixtures) BorrowingInput(issued shared.Date, days int) appborrowing.CreateBorrowingInput {
	return appborrowing.CreateBorrowingInput{
		Borrower:   f.CustomerInput(),
		Item:       f.ItemInput(),
		DateIssued: issued,
		DueDate:    issued.AddDays(days),
	}
}

func emailPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
