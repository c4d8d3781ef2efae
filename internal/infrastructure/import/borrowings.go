package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
)

// Borrowing file columns
const (
	ColumnFirstName   = "first_name"
	ColumnLastName    = "last_name"
	ColumnEmail       = "email"
	ColumnPhoneNumber = "phone_number"
	ColumnItem        = "item"
	ColumnDescription = "description"
	ColumnDateIssued  = "date_issued"
	ColumnDueDate     = "due_date"
)

// RequiredColumns must appear in the header of a borrowing file
var RequiredColumns = []string{ColumnFirstName, ColumnLastName, ColumnEmail, ColumnItem, ColumnDueDate}

// fieldColumns maps CreateBorrowingInput field paths to file columns
var fieldColumns = map[string]string{
	"borrower.first_name":   ColumnFirstName,
	"borrower.last_name":    ColumnLastName,
	"borrower.email":        ColumnEmail,
	"borrower.phone_number": ColumnPhoneNumber,
	"item.name":             ColumnItem,
	"item.description":      ColumnDescription,
	"date_issued":           ColumnDateIssued,
	"due_date":              ColumnDueDate,
}

// BorrowingRow is a decoded row ready to be recorded
type BorrowingRow struct {
	Line  int
	Input appborrowing.CreateBorrowingInput
}

// DecodeBorrowings reads a borrowing file. File-level problems (encoding,
// header, no rows) are returned as the error; problems with individual rows
// are collected in the ErrorCollection and those rows are left out.
func DecodeBorrowings(r io.Reader, maxErrors int, opts ...ParserOption) ([]BorrowingRow, *ErrorCollection, error) {
	parser, err := NewCSVParser(r, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, nil, err
	}
	if missing := parser.MissingHeaders(RequiredColumns); len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Columns: missing}
	}

	errs := NewErrorCollection(maxErrors)
	var rows []BorrowingRow
	for {
		row, err := parser.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, nil, err
			}
			errs.Add(RowError{Row: parser.CurrentRow(), Code: ErrCodeMalformedRow, Message: err.Error()})
			continue
		}
		if row.IsEmpty() {
			continue
		}
		if in, ok := decodeRow(row, errs); ok {
			rows = append(rows, BorrowingRow{Line: row.LineNumber, Input: in})
		}
	}
	if len(rows) == 0 && !errs.HasErrors() {
		return nil, nil, ErrNoDataRows
	}
	return rows, errs, nil
}

func decodeRow(row *Row, errs *ErrorCollection) (appborrowing.CreateBorrowingInput, bool) {
	in := appborrowing.CreateBorrowingInput{
		Borrower: appborrowing.CustomerInput{
			FirstName:   row.Get(ColumnFirstName),
			LastName:    row.Get(ColumnLastName),
			Email:       row.Get(ColumnEmail),
			PhoneNumber: row.Get(ColumnPhoneNumber),
		},
		Item: appborrowing.ItemInput{
			Name:        row.Get(ColumnItem),
			Description: row.Get(ColumnDescription),
		},
	}

	ok := true
	for _, col := range RequiredColumns {
		if row.Get(col) == "" {
			errs.Add(RowError{
				Row:     row.LineNumber,
				Column:  col,
				Code:    ErrCodeRequiredField,
				Message: fmt.Sprintf("field '%s' is required", col),
			})
			ok = false
		}
	}

	parseDate := func(col string, dst *shared.Date) {
		raw := row.Get(col)
		if raw == "" {
			return
		}
		d, err := shared.ParseDate(raw)
		if err != nil {
			errs.Add(RowError{
				Row:     row.LineNumber,
				Column:  col,
				Code:    ErrCodeInvalidFormat,
				Message: "invalid format, expected YYYY-MM-DD",
				Value:   raw,
			})
			ok = false
			return
		}
		*dst = d
	}
	parseDate(ColumnDateIssued, &in.DateIssued)
	parseDate(ColumnDueDate, &in.DueDate)

	return in, ok
}

// rowError converts a CreateBorrowing failure into a row error
func rowError(line int, err error) RowError {
	var verr *appborrowing.ValidationError
	if errors.As(err, &verr) {
		return RowError{
			Row:     line,
			Column:  fieldColumns[verr.Field],
			Code:    ErrCodeValidation,
			Message: verr.Message,
		}
	}
	return RowError{Row: line, Code: ErrCodeCreationFailed, Message: err.Error()}
}
