package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	csvimport "github.com/borrowtrack/backend/internal/infrastructure/import"
	"github.com/spf13/cobra"
)

// import: record every row of a CSV file, in file order.
func (c *cli) importCmd() *cobra.Command {
	var (
		delimiter   string
		maxErrors   int
		stopOnError bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv|->",
		Short: "Record borrowings from a CSV file",
		Long: `Record borrowings from a CSV file with the columns
first_name, last_name, email, item and due_date (required) and
phone_number, description and date_issued (optional). Header names are
matched case-insensitively and may use spaces instead of underscores.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, size := utf8.DecodeRuneInString(delimiter)
			if size == 0 || size != len(delimiter) {
				return fmt.Errorf("--delimiter must be a single character, got %q", delimiter)
			}

			in, closeFn, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			importer := csvimport.NewImporter(c.service,
				csvimport.WithImportLogger(c.log),
				csvimport.WithMaxErrors(maxErrors),
				csvimport.WithStopOnError(stopOnError),
				csvimport.WithDryRun(dryRun),
				csvimport.WithParserOptions(csvimport.WithDelimiter(d)))

			result, err := importer.Import(cmd.Context(), in)
			if result != nil {
				for _, b := range result.Created {
					c.ledger.Append(b)
				}
				writeImportResult(cmd.OutOrStdout(), result, dryRun)
			}
			if err != nil {
				return err
			}
			if result.Errors.HasErrors() {
				return errors.New("some rows were not imported")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&delimiter, "delimiter", ",", "field delimiter")
	f.IntVar(&maxErrors, "max-errors", 100, "number of row errors to report")
	f.BoolVar(&stopOnError, "stop-on-error", false, "stop at the first row that fails")
	f.BoolVar(&dryRun, "dry-run", false, "check the file without recording anything")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeImportResult(w io.Writer, result *csvimport.Result, dryRun bool) {
	switch {
	case dryRun:
		fmt.Fprintf(w, "Checked %d rows: %d ready to import.\n",
			result.TotalRows, result.TotalRows-result.Errors.FailedRows())
	case result.Stopped:
		fmt.Fprintf(w, "Stopped after %d of %d rows.\n", len(result.Created), result.TotalRows)
	default:
		fmt.Fprintf(w, "Imported %d of %d rows.\n", len(result.Created), result.TotalRows)
	}
	for _, b := range result.Created {
		fmt.Fprintf(w, "  #%d %s borrowed %q, due %s (%s)\n",
			b.ID, b.BorrowerDisplayName(), b.Item.Name, b.DueDate.Display(), b.Status)
	}
	if result.Errors.HasErrors() {
		fmt.Fprint(w, result.Errors.String())
	}
}
