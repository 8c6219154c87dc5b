package main

import (
	"os"

	"github.com/m0rozov/versetrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
