package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newSQLiteDatabase opens a migrated in-memory sqlite database
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newMockGorm creates a GORM connection backed by sqlmock with the postgres dialect
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedCustomer(t *testing.T, repo *GormCustomerRepository, first, email string) *borrowing.Customer {
	t.Helper()
	c, err := borrowing.NewCustomer(first, "Tester", email, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func seedItem(t *testing.T, repo *GormItemRepository, name string) *borrowing.Item {
	t.Helper()
	i, err := borrowing.NewItem(name, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), i))
	return i
}

func seedTransaction(t *testing.T, repo *GormTransactionRepository, itemID, borrowerID int64, issued, due, today string) *borrowing.Transaction {
	t.Helper()
	txn, err := borrowing.NewTransaction(itemID, borrowerID,
		shared.MustParseDate(issued), shared.MustParseDate(due), shared.MustParseDate(today))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), txn))
	return txn
}
