package csvimport

import (
	"context"
	"io"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"go.uber.org/zap"
)

// BorrowingCreator records one borrowing
type BorrowingCreator interface {
	CreateBorrowing(ctx context.Context, in appborrowing.CreateBorrowingInput) (*appborrowing.Borrowing, error)
}

// Result summarizes an import
type Result struct {
	TotalRows int
	Created   []appborrowing.Borrowing
	Errors    *ErrorCollection
	// Stopped is set when the import ended early on a row failure
	Stopped bool
}

// ImporterOption configures an Importer
type ImporterOption func(*Importer)

// WithImportLogger sets the logger
func WithImportLogger(logger *zap.Logger) ImporterOption {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithMaxErrors caps the row errors kept in the result
func WithMaxErrors(n int) ImporterOption {
	return func(i *Importer) {
		i.maxErrors = n
	}
}

// WithStopOnError ends the import at the first row that fails to record
func WithStopOnError(stop bool) ImporterOption {
	return func(i *Importer) {
		i.stopOnError = stop
	}
}

// WithDryRun decodes and checks the file without recording anything
func WithDryRun(dryRun bool) ImporterOption {
	return func(i *Importer) {
		i.dryRun = dryRun
	}
}

// WithParserOptions passes options to the CSV parser
func WithParserOptions(opts ...ParserOption) ImporterOption {
	return func(i *Importer) {
		i.parserOpts = append(i.parserOpts, opts...)
	}
}

// Importer records the rows of a borrowing file in file order. Rows run one
// after another so that a borrower appearing on several rows is created once
// and reused afterwards.
type Importer struct {
	creator     BorrowingCreator
	logger      *zap.Logger
	maxErrors   int
	stopOnError bool
	dryRun      bool
	parserOpts  []ParserOption
}

// NewImporter creates an Importer that records through creator
func NewImporter(creator BorrowingCreator, opts ...ImporterOption) *Importer {
	i := &Importer{
		creator:   creator,
		logger:    zap.NewNop(),
		maxErrors: 100,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import decodes r and records every valid row. Rows that fail to decode or
// record are reported in Result.Errors; records created by earlier rows stay
// in place. The returned error is reserved for file-level problems and
// context cancellation.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	rows, errs, err := DecodeBorrowings(r, i.maxErrors, i.parserOpts...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TotalRows: len(rows) + errs.FailedRows(),
		Errors:    errs,
	}
	if i.dryRun {
		i.logger.Info("Import dry run",
			zap.Int("valid_rows", len(rows)),
			zap.Int("errors", errs.TotalCount()))
		return result, nil
	}
	if i.stopOnError && errs.HasErrors() {
		result.Stopped = true
		return result, nil
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		b, err := i.creator.CreateBorrowing(ctx, row.Input)
		if err != nil {
			i.logger.Warn("Import row failed", zap.Int("row", row.Line), zap.Error(err))
			errs.Add(rowError(row.Line, err))
			if i.stopOnError {
				result.Stopped = true
				break
			}
			continue
		}
		result.Created = append(result.Created, *b)
	}

	i.logger.Info("Import finished",
		zap.Int("rows", result.TotalRows),
		zap.Int("created", len(result.Created)),
		zap.Int("errors", errs.TotalCount()))
	return result, nil
}
