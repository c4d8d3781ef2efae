package csvimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const header = "First Name,Last Name,Email,Phone Number,Item,Description,Date Issued,Due Date\n"

type fakeCreator struct {
	calls []appborrowing.CreateBorrowingInput
	fail  map[string]error
}

func (f *fakeCreator) CreateBorrowing(_ context.Context, in appborrowing.CreateBorrowingInput) (*appborrowing.Borrowing, error) {
	f.calls = append(f.calls, in)
	if err := f.fail[in.Item.Name]; err != nil {
		return nil, err
	}
	b := &appborrowing.Borrowing{
		Transaction: borrowing.Transaction{DueDate: in.DueDate},
		Item:        borrowing.Item{Name: in.Item.Name},
	}
	b.ID = int64(len(f.calls))
	return b, nil
}

func TestDecodeBorrowings(t *testing.T) {
	t.Run("valid rows", func(t *testing.T) {
		rows, errs, err := DecodeBorrowings(strings.NewReader(header+
			"Ada,Lovelace,ada@example.com,5551234,Drill,cordless,2024-03-01,2024-03-05\n"+
			"Alan,Turing,alan@example.com,,Tent,,,2024-04-01\n"), 10)
		require.NoError(t, err)
		assert.False(t, errs.HasErrors())
		require.Len(t, rows, 2)

		assert.Equal(t, 2, rows[0].Line)
		assert.Equal(t, appborrowing.CreateBorrowingInput{
			Borrower:   appborrowing.CustomerInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "5551234"},
			Item:       appborrowing.ItemInput{Name: "Drill", Description: "cordless"},
			DateIssued: shared.MustParseDate("2024-03-01"),
			DueDate:    shared.MustParseDate("2024-03-05"),
		}, rows[0].Input)
		assert.True(t, rows[1].Input.DateIssued.IsZero())
	})

	t.Run("row errors", func(t *testing.T) {
		rows, errs, err := DecodeBorrowings(strings.NewReader(header+
			",Lovelace,ada@example.com,,Drill,,,2024-03-05\n"+
			"Alan,Turing,alan@example.com,,Tent,,03/01/2024,2024-04-01\n"+
			"Grace,Hopper,grace@example.com,,Stove,,,2024-05-01\n"), 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 4, rows[0].Line)

		require.Len(t, errs.Errors(), 2)
		assert.Equal(t, RowError{Row: 2, Column: ColumnFirstName, Code: ErrCodeRequiredField, Message: "field 'first_name' is required"}, errs.Errors()[0])
		assert.Equal(t, RowError{Row: 3, Column: ColumnDateIssued, Code: ErrCodeInvalidFormat, Message: "invalid format, expected YYYY-MM-DD", Value: "03/01/2024"}, errs.Errors()[1])
	})

	t.Run("missing columns", func(t *testing.T) {
		_, _, err := DecodeBorrowings(strings.NewReader("first_name,last_name,item\nAda,Lovelace,Drill\n"), 10)
		var missing *MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{ColumnEmail, ColumnDueDate}, missing.Columns)
	})

	t.Run("header only", func(t *testing.T) {
		_, _, err := DecodeBorrowings(strings.NewReader(header), 10)
		assert.ErrorIs(t, err, ErrNoDataRows)
	})
}

func TestImporter_Import(t *testing.T) {
	file := header +
		"Ada,Lovelace,ada@example.com,,Drill,,2024-03-01,2024-03-05\n" +
		"Ada,Lovelace,ada@example.com,,Broken,,2024-03-01,2024-03-05\n" +
		"Ada,Lovelace,not-an-email,,Saw,,2024-03-01,2024-03-05\n" +
		"Ada,Lovelace,ada@example.com,,Tent,,2024-03-01,2024-03-09\n"

	newCreator := func() *fakeCreator {
		return &fakeCreator{fail: map[string]error{
			"Broken": &appborrowing.CreationError{Step: appborrowing.StepItem, Err: errors.New("HTTP 500")},
			"Saw":    &appborrowing.ValidationError{Field: "borrower.email", Message: "Enter a valid email address."},
		}}
	}

	t.Run("continues past failures", func(t *testing.T) {
		creator := newCreator()
		result, err := NewImporter(creator, WithImportLogger(zap.NewNop())).Import(context.Background(), strings.NewReader(file))
		require.NoError(t, err)

		assert.Equal(t, 4, result.TotalRows)
		assert.False(t, result.Stopped)
		require.Len(t, result.Created, 2)
		assert.Equal(t, "Drill", result.Created[0].Item.Name)
		assert.Equal(t, "Tent", result.Created[1].Item.Name)
		assert.Len(t, creator.calls, 4)

		require.Len(t, result.Errors.Errors(), 2)
		assert.Equal(t, 3, result.Errors.Errors()[0].Row)
		assert.Equal(t, ErrCodeCreationFailed, result.Errors.Errors()[0].Code)
		assert.Equal(t, RowError{Row: 4, Column: ColumnEmail, Code: ErrCodeValidation, Message: "Enter a valid email address."}, result.Errors.Errors()[1])
	})

	t.Run("stop on error", func(t *testing.T) {
		creator := newCreator()
		result, err := NewImporter(creator, WithStopOnError(true)).Import(context.Background(), strings.NewReader(file))
		require.NoError(t, err)

		assert.True(t, result.Stopped)
		assert.Len(t, result.Created, 1)
		assert.Len(t, creator.calls, 2)
	})

	t.Run("stop on error skips recording when rows fail to decode", func(t *testing.T) {
		creator := newCreator()
		result, err := NewImporter(creator, WithStopOnError(true)).Import(context.Background(),
			strings.NewReader(header+"Ada,,ada@example.com,,Drill,,,2024-03-05\nAda,Lovelace,ada@example.com,,Tent,,,2024-03-05\n"))
		require.NoError(t, err)

		assert.True(t, result.Stopped)
		assert.Empty(t, creator.calls)
	})

	t.Run("dry run", func(t *testing.T) {
		creator := newCreator()
		result, err := NewImporter(creator, WithDryRun(true)).Import(context.Background(), strings.NewReader(file))
		require.NoError(t, err)

		assert.Equal(t, 4, result.TotalRows)
		assert.Empty(t, result.Created)
		assert.Empty(t, creator.calls)
	})

	t.Run("semicolon delimited", func(t *testing.T) {
		creator := newCreator()
		result, err := NewImporter(creator, WithParserOptions(WithDelimiter(';'))).Import(context.Background(),
			strings.NewReader("first_name;last_name;email;item;due_date\nAda;Lovelace;ada@example.com;Drill;2024-03-05\n"))
		require.NoError(t, err)
		assert.Len(t, result.Created, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		creator := newCreator()
		_, err := NewImporter(creator).Import(ctx, strings.NewReader(file))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, creator.calls)
	})

	t.Run("file error", func(t *testing.T) {
		_, err := NewImporter(newCreator()).Import(context.Background(), strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}
