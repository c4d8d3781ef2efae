package borrowing

import (
	"testing"

	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) shared.Date {
	return shared.MustParseDate(s)
}

func datePtr(s string) *shared.Date {
	d := shared.MustParseDate(s)
	return &d
}

func TestNewTransaction(t *testing.T) {
	t.Run("starts borrowed before the due date", func(t *testing.T) {
		txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-03"))

		require.NoError(t, err)
		assert.Equal(t, StatusBorrowed, txn.Status)
		assert.Equal(t, int64(1), txn.ItemID)
		assert.Equal(t, int64(2), txn.BorrowerID)
		require.Len(t, txn.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeTransactionCreated, txn.GetDomainEvents()[0].EventType())
	})

	t.Run("is borrowed on the due date itself", func(t *testing.T) {
		txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-10"))

		require.NoError(t, err)
		assert.Equal(t, StatusBorrowed, txn.Status)
	})

	t.Run("starts overdue when created after the due date", func(t *testing.T) {
		txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-11"))

		require.NoError(t, err)
		assert.Equal(t, StatusOverdue, txn.Status)
	})

	t.Run("requires references and dates", func(t *testing.T) {
		_, err := NewTransaction(0, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-01"))
		assert.ErrorContains(t, err, "required")

		_, err = NewTransaction(1, 0, date("2024-05-01"), date("2024-05-10"), date("2024-05-01"))
		assert.Error(t, err)

		_, err = NewTransaction(1, 2, shared.Date{}, date("2024-05-10"), date("2024-05-01"))
		assert.Error(t, err)

		_, err = NewTransaction(1, 2, date("2024-05-01"), shared.Date{}, date("2024-05-01"))
		assert.Error(t, err)
	})
}

func TestTransaction_RefreshStatus(t *testing.T) {
	txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-01"))
	require.NoError(t, err)
	txn.ClearDomainEvents()

	assert.False(t, txn.RefreshStatus(date("2024-05-09")))
	assert.True(t, txn.RefreshStatus(date("2024-05-11")))
	assert.Equal(t, StatusOverdue, txn.Status)

	require.Len(t, txn.GetDomainEvents(), 1)
	changed, ok := txn.GetDomainEvents()[0].(*TransactionStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, StatusBorrowed, changed.From)
	assert.Equal(t, StatusOverdue, changed.To)
}

func TestTransaction_MarkReturned(t *testing.T) {
	txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-12"))
	require.NoError(t, err)
	require.Equal(t, StatusOverdue, txn.Status)

	require.NoError(t, txn.MarkReturned(datePtr("2024-05-12"), date("2024-05-12")))
	assert.Equal(t, StatusReturned, txn.Status)
	assert.True(t, txn.IsReturned())
	assert.False(t, txn.IsOverdueOn(date("2024-06-01")))

	require.NoError(t, txn.MarkReturned(nil, date("2024-05-12")))
	assert.Equal(t, StatusOverdue, txn.Status, "clearing the return date recomputes the status")

	err = txn.MarkReturned(datePtr("2024-04-30"), date("2024-05-12"))
	assert.ErrorContains(t, err, "before the issue date")
}

func TestTransaction_Reschedule(t *testing.T) {
	txn, err := NewTransaction(1, 2, date("2024-05-01"), date("2024-05-10"), date("2024-05-12"))
	require.NoError(t, err)

	require.NoError(t, txn.Reschedule(date("2024-05-01"), date("2024-05-20"), date("2024-05-12")))
	assert.Equal(t, StatusBorrowed, txn.Status)
	assert.Error(t, txn.Reschedule(date("2024-05-01"), shared.Date{}, date("2024-05-12")))
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusBorrowed.IsValid())
	assert.True(t, StatusReturned.IsValid())
	assert.True(t, StatusOverdue.IsValid())
	assert.False(t, Status("lost").IsValid())
}
