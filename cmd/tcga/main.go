// Package main is the entry point for the tcga CLI client.
package main

import (
	"github.com/donaldgifford/tcg-analytics/cmd/tcga/cmd"
)

func main() {
	cmd.Execute()
}
