// Package commands implements borrowctl, a terminal client that records
// borrowings against a running directory and shows the enriched ledger.
//
//	borrowctl add --first Ada --last Lovelace --email ada@example.com --item "Drill" --due 2024-03-20
//	borrowctl import --dry-run borrowings.csv
//	borrowctl list
//	borrowctl dashboard
package commands
