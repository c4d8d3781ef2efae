package commands

import (
	"fmt"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/spf13/cobra"
)

// add: record a new borrowing, reusing the customer when the email is known.
func (c *cli) addCmd() *cobra.Command {
	var (
		in             appborrowing.CreateBorrowingInput
		issued, dueRaw string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record that a customer borrowed an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if issued != "" {
				if in.DateIssued, err = shared.ParseDate(issued); err != nil {
					return fmt.Errorf("--issued: %w", err)
				}
			}
			if in.DueDate, err = shared.ParseDate(dueRaw); err != nil {
				return fmt.Errorf("--due: %w", err)
			}

			b, err := c.service.CreateBorrowing(cmd.Context(), in)
			if err != nil {
				return err
			}
			c.ledger.Append(*b)

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded #%d: %s borrowed %q, due %s (%s)\n",
				b.ID, b.BorrowerDisplayName(), b.Item.Name, b.DueDate.Display(), b.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Borrower.FirstName, "first", "", "borrower first name")
	f.StringVar(&in.Borrower.LastName, "last", "", "borrower last name")
	f.StringVar(&in.Borrower.Email, "email", "", "borrower email; an existing customer with this email is reused")
	f.StringVar(&in.Borrower.PhoneNumber, "phone", "", "borrower phone number")
	f.StringVar(&in.Item.Name, "item", "", "name of the borrowed item")
	f.StringVar(&in.Item.Description, "description", "", "item description")
	f.StringVar(&issued, "issued", "", "issue date YYYY-MM-DD (default today)")
	f.StringVar(&dueRaw, "due", "", "due date YYYY-MM-DD")
	for _, name := range []string{"first", "last", "email", "item", "due"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
