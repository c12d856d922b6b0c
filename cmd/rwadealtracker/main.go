package main

import (
	"os"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
