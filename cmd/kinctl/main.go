package main

import (
	"os"

	"github.com/jrsteele09/go-kin-bridge/cmd/kinctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
