package main

import (
	"os"

	"github.com/Rbh2733/Dashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
