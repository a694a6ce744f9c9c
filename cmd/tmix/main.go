package main

import (
	"os"

	"github.com/pstuifzand/tui-mixer/cmd/tmix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
