package main

import (
	"os"

	"github.com/msto63/boundary/cmd/boundary/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
