package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clear empties the local view only; nothing is deleted on the server.
func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the local borrowing list (server records are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(cmd); err != nil {
				return err
			}
			n := c.ledger.Len()
			c.ledger.Clear()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cleared %d borrowings from the local list; %d left.\n", n, c.ledger.Len())
			fmt.Fprintln(out, "Records on the server were not changed and will be listed again on the next load.")
			return nil
		},
	}
}
