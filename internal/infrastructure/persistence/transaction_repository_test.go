package persistence

import (
	"context"
	"testing"

	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionRepository(t *testing.T) {
	db := newSQLiteDatabase(t)
	customers := NewGormCustomerRepository(db.DB)
	items := NewGormItemRepository(db.DB)
	repo := NewGormTransactionRepository(db.DB)
	ctx := context.Background()

	ada := seedCustomer(t, customers, "Ada", "ada@example.com")
	grace := seedCustomer(t, customers, "Grace", "grace@navy.mil")
	drill := seedItem(t, items, "Drill")
	ladder := seedItem(t, items, "Ladder")

	const today = "2024-05-10"
	late := seedTransaction(t, repo, drill.ID, ada.ID, "2024-05-01", "2024-05-05", "2024-05-01")
	current := seedTransaction(t, repo, ladder.ID, grace.ID, "2024-05-08", "2024-05-20", today)

	t.Run("reads fill display names", func(t *testing.T) {
		found, err := repo.FindByID(ctx, late.ID)
		require.NoError(t, err)
		assert.Equal(t, "Drill", found.ItemName)
		assert.Equal(t, "Ada", found.BorrowerName)
		assert.Equal(t, shared.MustParseDate("2024-05-05"), found.DueDate)
		assert.Nil(t, found.DateReturned)
		assert.Equal(t, borrowing.StatusBorrowed, found.Status)
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists in id order", func(t *testing.T) {
		all, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, late.ID, all[0].ID)
		assert.Equal(t, current.ID, all[1].ID)
		assert.Equal(t, "Grace", all[1].BorrowerName)
	})

	t.Run("filters by borrower and searches item name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters[borrowing.FilterBorrower] = grace.ID
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, current.ID, found[0].ID)

		filter = shared.DefaultFilter()
		filter.Search = "dril"
		found, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, late.ID, found[0].ID)
	})

	t.Run("finds past due borrowed transactions", func(t *testing.T) {
		due, err := repo.FindPastDue(ctx, shared.MustParseDate(today))
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, late.ID, due[0].ID)
	})

	t.Run("status filter after update", func(t *testing.T) {
		require.True(t, late.RefreshStatus(shared.MustParseDate(today)))
		require.NoError(t, repo.Save(ctx, late))

		filter := shared.DefaultFilter()
		filter.Filters[borrowing.FilterStatus] = string(borrowing.StatusOverdue)
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, late.ID, found[0].ID)

		due, err := repo.FindPastDue(ctx, shared.MustParseDate(today))
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("return date round trips", func(t *testing.T) {
		returned := shared.MustParseDate("2024-05-12")
		require.NoError(t, current.MarkReturned(&returned, shared.MustParseDate(today)))
		require.NoError(t, repo.Save(ctx, current))

		found, err := repo.FindByID(ctx, current.ID)
		require.NoError(t, err)
		require.NotNil(t, found.DateReturned)
		assert.Equal(t, returned, *found.DateReturned)
		assert.Equal(t, borrowing.StatusReturned, found.Status)
	})

	t.Run("unknown reference is rejected", func(t *testing.T) {
		txn, err := borrowing.NewTransaction(drill.ID, 4242,
			shared.MustParseDate("2024-05-01"), shared.MustParseDate("2024-05-02"), shared.MustParseDate(today))
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, txn), ErrUnknownReference)
	})

	t.Run("deleting a customer removes their transactions", func(t *testing.T) {
		require.NoError(t, customers.Delete(ctx, ada.ID))
		_, err := repo.FindByID(ctx, late.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, current.ID))
		assert.ErrorIs(t, repo.Delete(ctx, current.ID), shared.ErrNotFound)
	})
}
