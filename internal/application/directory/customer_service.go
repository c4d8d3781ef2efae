package directory

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
)

// CustomerService handles customer-related operations of the directory
type CustomerService struct {
	customerRepo borrowing.CustomerRepository
	opts         serviceOptions
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo borrowing.CustomerRepository, opts ...Option) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		opts:         newOptions(opts),
	}
}

// Create creates a new customer; the email must not be in use
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, borrowing.ErrEmailTaken
	}

	customer, err := borrowing.NewCustomer(req.FirstName, req.LastName, req.Email, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID, consulting the record cache first
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	if cached, ok := s.opts.cache.GetCustomer(ctx, id); ok {
		response := ToCustomerResponse(cached)
		return &response, nil
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.opts.cache.SetCustomer(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List lists customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx,
		listFilter(filter.Search, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir))
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, nil
}

// Update applies the fields present in req
func (s *CustomerService) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	firstName, lastName, email, phone := customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.PhoneNumber != nil {
		phone = *req.PhoneNumber
	}

	if email != customer.Email {
		exists, err := s.customerRepo.ExistsByEmail(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, borrowing.ErrEmailTaken
		}
	}

	if err := customer.Update(firstName, lastName, email, phone); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.opts.cache.InvalidateCustomer(ctx, id)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer and every transaction that references it
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.cache.InvalidateCustomer(ctx, id)
	return nil
}
