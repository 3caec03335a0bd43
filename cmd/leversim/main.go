package main

import (
	"os"

	"github.com/rustyeddy/leversim/cmd/leversim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
