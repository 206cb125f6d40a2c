package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/xavierca1/call-screener/internal/cli"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load()
	cli.SetVersionInfo(version, commit)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
