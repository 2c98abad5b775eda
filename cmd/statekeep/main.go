package main

import (
	"os"

	"statekeep/cmd/statekeep/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
