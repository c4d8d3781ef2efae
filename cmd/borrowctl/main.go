package main

import (
	"os"

	"github.com/borrowtrack/backend/cmd/borrowctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
