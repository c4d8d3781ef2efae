package directory

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
)

// ItemService handles item-related operations of the directory.
// Items are never deduplicated by name.
type ItemService struct {
	itemRepo borrowing.ItemRepository
	opts     serviceOptions
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo borrowing.ItemRepository, opts ...Option) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		opts:     newOptions(opts),
	}
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := borrowing.NewItem(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID, consulting the record cache first
func (s *ItemService) GetByID(ctx context.Context, id int64) (*ItemResponse, error) {
	if cached, ok := s.opts.cache.GetItem(ctx, id); ok {
		response := ToItemResponse(cached)
		return &response, nil
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.opts.cache.SetItem(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// List lists items matching the filter
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx,
		listFilter(filter.Search, filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir))
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, nil
}

// Update applies the fields present in req
func (s *ItemService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, description := item.Name, item.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := item.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.opts.cache.InvalidateItem(ctx, id)

	response := ToItemResponse(item)
	return &response, nil
}

// Delete deletes an item and every transaction that references it
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.cache.InvalidateItem(ctx, id)
	return nil
}
