package main

import (
	"os"

	"wallet-dashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
