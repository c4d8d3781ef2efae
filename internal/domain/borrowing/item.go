package borrowing

import (
	"strings"
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

const maxItemNameLength = 100

// Item is a lendable thing. A fresh item is recorded for every borrowing.
type Item struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewItem creates a new item
func NewItem(name, description string) (*Item, error) {
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Update replaces the item's name and description
func (i *Item) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateItemName(name); err != nil {
		return err
	}
	i.Name = name
	i.Description = description
	i.UpdatedAt = time.Now()
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewFieldError("INVALID_NAME", "name", "This field may not be blank.")
	}
	if len(name) > maxItemNameLength {
		return shared.NewFieldError("INVALID_NAME", "name", "Ensure this field has no more than 100 characters.")
	}
	return nil
}
