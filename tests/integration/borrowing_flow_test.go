//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	directoryapp "github.com/borrowtrack/backend/internal/application/directory"
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"github.com/borrowtrack/backend/internal/infrastructure/directoryclient"
	"github.com/borrowtrack/backend/internal/infrastructure/persistence"
	"github.com/borrowtrack/backend/internal/interfaces/http/handler"
	"github.com/borrowtrack/backend/internal/interfaces/http/router"
	"github.com/borrowtrack/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var flowToday = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type directoryServer struct {
	URL          string
	Handler      http.Handler
	Transactions *directoryapp.TransactionService
}

func newDirectoryServer(t *testing.T, tdb *TestDB) *directoryServer {
	t.Helper()

	clock := directoryapp.WithClock(func() time.Time { return flowToday })
	customers := persistence.NewGormCustomerRepository(tdb.DB)
	items := persistence.NewGormItemRepository(tdb.DB)
	transactions := persistence.NewGormTransactionRepository(tdb.DB)
	txnService := directoryapp.NewTransactionService(transactions, customers, items, clock)

	engine, err := router.NewEngine(router.Handlers{
		Customer:    handler.NewCustomerHandler(directoryapp.NewCustomerService(customers, clock)),
		Item:        handler.NewItemHandler(directoryapp.NewItemService(items, clock)),
		Transaction: handler.NewTransactionHandler(txnService),
		Health:      handler.NewHealthHandler(tdb, "integration"),
	}, router.EngineOptions{HTTP: config.HTTPConfig{APIPrefix: "/api", MaxBodySize: 1 << 20}})
	require.NoError(t, err)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return &directoryServer{URL: srv.URL + "/api", Handler: engine, Transactions: txnService}
}

func TestBorrowingFlow_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	server := newDirectoryServer(t, tdb)
	fixtures := testutil.NewFixtures(3)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	client, err := directoryclient.New(config.DirectoryConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	service := appborrowing.NewBorrowingService(client, zap.NewNop(),
		appborrowing.WithClock(func() time.Time { return flowToday }),
		appborrowing.WithEnrichConcurrency(4))

	issued := shared.DateOf(flowToday)
	late := fixtures.BorrowingInput(issued.AddDays(-10), 5)
	soon := fixtures.BorrowingInput(issued, 2)
	repeat := fixtures.BorrowingInput(issued.AddDays(-1), 14)
	repeat.Borrower = soon.Borrower

	var created []*appborrowing.Borrowing
	for _, in := range []appborrowing.CreateBorrowingInput{late, soon, repeat} {
		b, err := service.CreateBorrowing(ctx, in)
		require.NoError(t, err)
		created = append(created, b)
	}

	t.Run("existing customer is reused", func(t *testing.T) {
		assert.Equal(t, created[1].Customer.ID, created[2].Customer.ID)
		assert.NotEqual(t, created[0].Customer.ID, created[1].Customer.ID)
		assert.Equal(t, borrowing.StatusOverdue, created[0].Status)
	})

	t.Run("list is enriched and classified", func(t *testing.T) {
		list, err := service.ListBorrowings(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, b := range list {
			assert.False(t, b.Degraded)
			assert.Equal(t, created[i].ID, b.ID)
			assert.Equal(t, created[i].Customer.Email, b.Customer.Email)
			assert.Equal(t, created[i].Item.Name, b.Item.Name)
		}

		ledger := appborrowing.NewLedger(list...)
		d := ledger.Dashboard(flowToday)
		require.Len(t, d.Overdue, 1)
		assert.Equal(t, created[0].ID, d.Overdue[0].ID)
		require.Len(t, d.DueSoon, 1)
		assert.Equal(t, created[1].ID, d.DueSoon[0].ID)
		assert.Len(t, d.Recent, 3)

		ledger.Clear()
		assert.Zero(t, ledger.Len())
		again, err := service.ListBorrowings(ctx)
		require.NoError(t, err)
		assert.Len(t, again, 3)
	})

	t.Run("deleting an item removes its borrowing", func(t *testing.T) {
		w := testutil.DoJSON(t, server.Handler, http.MethodDelete, "/api/items/"+itoa(created[2].Item.ID)+"/", nil, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		list, err := service.ListBorrowings(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("overdue sweep", func(t *testing.T) {
		marked, err := server.Transactions.RefreshOverdue(context.Background())
		require.NoError(t, err)
		assert.Zero(t, marked)

		w := testutil.DoJSON(t, server.Handler, http.MethodGet, "/api/transactions/overdue/", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		overdue := testutil.DecodeJSON[[]map[string]any](t, w)
		require.Len(t, overdue, 1)
		assert.Equal(t, float64(created[0].ID), overdue[0]["id"])
	})
}

func TestHealth_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	server := newDirectoryServer(t, tdb)

	testutil.RunHTTPTestCase(t, server.Handler, testutil.HTTPTestCase{
		Path:           "/health",
		ExpectedStatus: http.StatusOK,
		ExpectedBody:   map[string]any{"status": "ok", "database": "ok", "version": "integration"},
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
