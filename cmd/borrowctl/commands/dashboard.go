package commands

import (
	"fmt"
	"io"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/spf13/cobra"
)

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show overdue, due soon and recently issued borrowings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd); err != nil {
				return err
			}
			return writeDashboard(cmd.OutOrStdout(), c.ledger.Dashboard(c.now()))
		},
	}
}

func writeDashboard(w io.Writer, d appborrowing.Dashboard) error {
	sections := []struct {
		title string
		list  []appborrowing.Borrowing
	}{
		{"Overdue", d.Overdue},
		{"Due soon", d.DueSoon},
		{"Recent", d.Recent},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", s.title, len(s.list))
		if err := writeTable(w, s.list); err != nil {
			return err
		}
	}
	return nil
}
