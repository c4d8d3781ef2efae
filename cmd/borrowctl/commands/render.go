package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
)

const degradedMark = "*"

func writeTable(w io.Writer, list []appborrowing.Borrowing) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "  (none)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBORROWER\tEMAIL\tITEM\tISSUED\tDUE\tRETURNED\tSTATUS")
	for _, b := range list {
		fmt.Fprintln(tw, row(b))
	}
	return tw.Flush()
}

func row(b appborrowing.Borrowing) string {
	returned := "-"
	if b.DateReturned != nil {
		returned = b.DateReturned.Display()
	}
	borrower := b.BorrowerDisplayName()
	if b.Degraded {
		borrower += degradedMark
	}
	email := b.Customer.Email
	if email == "" {
		email = "-"
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
		b.ID, borrower, email, b.Item.Name,
		b.DateIssued.Display(), b.DueDate.Display(), returned, b.Status)
}
