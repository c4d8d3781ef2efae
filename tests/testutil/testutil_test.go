package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/borrowtrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtures_Reproducible(t *testing.T) {
	a := NewFixtures(42)
	b := NewFixtures(42)

	assert.Equal(t, a.CustomerInput(), b.CustomerInput())
	assert.Equal(t, a.ItemInput(), b.ItemInput())
}

func TestFixtures_Valid(t *testing.T) {
	f := NewFixtures(7)
	v := validator.New()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		in := f.BorrowingInput(shared.NewDate(2024, 3, 1), 7)
		require.NoError(t, v.Struct(in), "input %d: %+v", i, in)
		assert.False(t, seen[in.Borrower.Email], "duplicate email %s", in.Borrower.Email)
		seen[in.Borrower.Email] = true
		assert.Equal(t, shared.NewDate(2024, 3, 8), in.DueDate)
	}

	c := f.Customer()
	assert.NotEmpty(t, c.FullName())
	assert.NotEmpty(t, f.Item().Name)
}

func TestEmailPart(t *testing.T) {
	assert.Equal(t, "oconnor", emailPart("O'Connor"))
	assert.Equal(t, "user", emailPart("--"))
}

func TestRunHTTPTestCases(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo/", func(c *gin.Context) {
		var in appborrowing.ItemInput
		if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
			c.JSON(http.StatusBadRequest, dto.FieldErrors{"name": {"This field is required."}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"name": in.Name, "request_id": c.GetHeader("X-Request-ID")})
	})
	engine.GET("/missing/", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewDetail(dto.DetailNotFound))
	})

	RunHTTPTestCases(t, engine, []HTTPTestCase{
		{
			Name:           "created",
			Method:         http.MethodPost,
			Path:           "/echo/",
			Body:           map[string]string{"name": "Tent"},
			Headers:        map[string]string{"X-Request-ID": "abc"},
			ExpectedStatus: http.StatusCreated,
			ExpectedBody:   map[string]any{"name": "Tent", "request_id": "abc"},
		},
		{
			Name:   "field error",
			Method: http.MethodPost,
			Path:   "/echo/",
			Body:   map[string]string{},
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				AssertFieldError(t, w, "name", "This field is required.")
			},
		},
		{
			Name: "detail",
			Path: "/missing/",
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				AssertDetail(t, w, http.StatusNotFound, "Not found.")
			},
		},
	})
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t, "", "/items/")
	tc.SetRequestID("req-1")

	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
	assert.Equal(t, "req-1", tc.Context.GetHeader("X-Request-ID"))
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
}

func TestNewMockDB(t *testing.T) {
	db := NewMockDB(t)
	db.Mock.ExpectExec(`DELETE FROM items`).WillReturnResult(sqlmock.NewResult(0, 2))

	result := db.DB.Exec("DELETE FROM items")
	require.NoError(t, result.Error)
	assert.Equal(t, int64(2), result.RowsAffected)
	db.ExpectationsWereMet(t)
}

func TestNewSQLiteDatabase(t *testing.T) {
	db := NewSQLiteDatabase(t)
	assert.NoError(t, db.Ping(ContextWithTimeout(t, time.Second)))
}

func TestRequireEventually(t *testing.T) {
	var n atomic.Int32
	RequireEventually(t, func() bool { return n.Add(1) >= 3 }, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}
