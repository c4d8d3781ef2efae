package borrowing

import (
	"regexp"
	"strings"
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

const (
	maxPersonNameLength = 50
	maxEmailLength      = 254
	maxPhoneLength      = 15
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a person who borrows items. Email is the unique lookup key.
type Customer struct {
	shared.BaseEntity
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// NewCustomer creates a new customer with validated identity fields
func NewCustomer(firstName, lastName, email, phone string) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity()}
	if err := c.apply(firstName, lastName, email, phone); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer's identity fields
func (c *Customer) Update(firstName, lastName, email, phone string) error {
	if err := c.apply(firstName, lastName, email, phone); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	return nil
}

// FullName returns "First Last"
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Customer) apply(firstName, lastName, email, phone string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if err := validatePersonName("first_name", firstName); err != nil {
		return err
	}
	if err := validatePersonName("last_name", lastName); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.PhoneNumber = phone
	return nil
}

func validatePersonName(field, name string) error {
	if name == "" {
		return shared.NewFieldError("INVALID_NAME", field, "This field may not be blank.")
	}
	if len(name) > maxPersonNameLength {
		return shared.NewFieldError("INVALID_NAME", field, "Ensure this field has no more than 50 characters.")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewFieldError("INVALID_EMAIL", "email", "This field may not be blank.")
	}
	if len(email) > maxEmailLength {
		return shared.NewFieldError("INVALID_EMAIL", "email", "Ensure this field has no more than 254 characters.")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewFieldError("INVALID_EMAIL", "email", "Enter a valid email address.")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > maxPhoneLength {
		return shared.NewFieldError("INVALID_PHONE", "phone_number", "Ensure this field has no more than 15 characters.")
	}
	return nil
}

// ErrEmailTaken is returned when another customer already uses the email
var ErrEmailTaken = shared.NewFieldError("ALREADY_EXISTS", "email", "customer with this email already exists.")
