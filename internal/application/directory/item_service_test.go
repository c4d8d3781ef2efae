package directory

import (
	"context"
	"testing"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemService(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*borrowing.Item")).
			Run(func(args mock.Arguments) { args.Get(1).(*borrowing.Item).ID = 4 }).
			Return(nil)

		resp, err := NewItemService(repo).Create(ctx, CreateItemRequest{Name: "Drill"})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Nil(t, resp.Description)
	})

	t.Run("create rejects blank name", func(t *testing.T) {
		repo := new(MockItemRepository)

		_, err := NewItemService(repo).Create(ctx, CreateItemRequest{Name: "  "})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Contains(t, de.Fields, "name")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("get is cached", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindByID", ctx, int64(4)).Return(itemFixture(4, "Drill"), nil).Once()
		svc := NewItemService(repo, WithRecordCache(newMapCache()))

		for i := 0; i < 3; i++ {
			resp, err := svc.GetByID(ctx, 4)
			require.NoError(t, err)
			assert.Equal(t, "Drill", resp.Name)
		}
		repo.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("update keeps untouched fields", func(t *testing.T) {
		repo := new(MockItemRepository)
		item := itemFixture(4, "Drill")
		item.Description = "18V"
		repo.On("FindByID", ctx, int64(4)).Return(item, nil)
		repo.On("Save", ctx, item).Return(nil)

		name := "Hammer Drill"
		resp, err := NewItemService(repo).Update(ctx, 4, UpdateItemRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Hammer Drill", resp.Name)
		require.NotNil(t, resp.Description)
		assert.Equal(t, "18V", *resp.Description)
	})

	t.Run("list", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindAll", ctx, mock.Anything).Return([]borrowing.Item{*itemFixture(1, "A"), *itemFixture(2, "B")}, nil)

		list, err := NewItemService(repo).List(ctx, ItemListFilter{})

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
