package borrowing

import (
	"context"
	"errors"
	"testing"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	input := CustomerInput{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"}

	t.Run("returns existing customer without creating", func(t *testing.T) {
		dir := new(MockDirectory)
		existing := newCustomer(7, "Old Name", "grace@example.com")
		dir.On("SearchCustomers", mock.Anything, "grace@example.com").
			Return([]borrowing.Customer{*newCustomer(3, "Other", "grace@example.com.au"), *existing}, nil)

		got, err := NewCustomerResolver(dir, nil).Resolve(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "Old Name", got.FirstName, "stale fields are not updated")
		dir.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("match is exact and case-sensitive", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("SearchCustomers", mock.Anything, "grace@example.com").
			Return([]borrowing.Customer{*newCustomer(3, "Grace", "Grace@Example.com")}, nil)
		dir.On("CreateCustomer", mock.Anything, input).
			Return(newCustomer(9, "Grace", "grace@example.com"), nil)

		got, err := NewCustomerResolver(dir, nil).Resolve(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		dir.AssertNumberOfCalls(t, "CreateCustomer", 1)
	})

	t.Run("creates when nothing matches", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("SearchCustomers", mock.Anything, "grace@example.com").Return([]borrowing.Customer{}, nil)
		dir.On("CreateCustomer", mock.Anything, input).
			Return(newCustomer(11, "Grace", "grace@example.com"), nil)

		got, err := NewCustomerResolver(dir, nil).Resolve(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
		assert.Equal(t, []string{"SearchCustomers", "CreateCustomer"}, dir.methods())
	})

	t.Run("create failure is a resolution error carrying the message", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("SearchCustomers", mock.Anything, "grace@example.com").Return([]borrowing.Customer{}, nil)
		dir.On("CreateCustomer", mock.Anything, input).
			Return(nil, errors.New("email: customer with this email already exists."))

		got, err := NewCustomerResolver(dir, nil).Resolve(ctx, input)

		assert.Nil(t, got)
		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "grace@example.com", resErr.Email)
		assert.Contains(t, err.Error(), "customer with this email already exists.")
	})

	t.Run("search failure is a resolution error", func(t *testing.T) {
		dir := new(MockDirectory)
		dir.On("SearchCustomers", mock.Anything, "grace@example.com").Return(nil, errors.New("connection refused"))

		_, err := NewCustomerResolver(dir, nil).Resolve(ctx, input)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		dir.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("empty email is rejected without calls", func(t *testing.T) {
		dir := new(MockDirectory)

		_, err := NewCustomerResolver(dir, nil).Resolve(ctx, CustomerInput{FirstName: "Grace", LastName: "Hopper", Email: " "})

		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "email", valErr.Field)
		assert.Empty(t, dir.Calls)
	})
}
