// Package main is the entry point for the tcg-analytics server.
package main

import (
	"os"

	"github.com/donaldgifford/tcg-analytics/cmd/tcg-analytics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
