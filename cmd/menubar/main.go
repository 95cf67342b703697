// Package main is the entry point for the menubar desktop.
package main

import (
	"os"

	"github.com/watchfire-io/menubar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
