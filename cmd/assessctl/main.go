package main

import (
	"os"

	"maturity-assessment/cmd/assessctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
