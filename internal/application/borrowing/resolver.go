package borrowing

import (
	"context"
	"strings"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"go.uber.org/zap"
)

// CustomerResolver finds a customer by exact email or creates one
type CustomerResolver struct {
	directory Directory
	logger    *zap.Logger
}

// NewCustomerResolver creates a new CustomerResolver
func NewCustomerResolver(directory Directory, logger *zap.Logger) *CustomerResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerResolver{
		directory: directory,
		logger:    logger,
	}
}

// Resolve returns the first customer whose email equals in.Email exactly,
// without touching its stored name or phone. When none matches, a new
// customer is created from in. Email comparison is case-sensitive.
func (r *CustomerResolver) Resolve(ctx context.Context, in CustomerInput) (*borrowing.Customer, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "This field is required."}
	}

	candidates, err := r.directory.SearchCustomers(ctx, in.Email)
	if err != nil {
		return nil, &ResolutionError{Email: in.Email, Err: err}
	}
	for i := range candidates {
		if candidates[i].Email == in.Email {
			r.logger.Debug("Resolved existing customer",
				zap.Int64("customer_id", candidates[i].ID),
				zap.String("email", in.Email))
			return &candidates[i], nil
		}
	}

	created, err := r.directory.CreateCustomer(ctx, in)
	if err != nil {
		return nil, &ResolutionError{Email: in.Email, Err: err}
	}
	r.logger.Info("Created customer",
		zap.Int64("customer_id", created.ID),
		zap.String("email", in.Email))
	return created, nil
}
