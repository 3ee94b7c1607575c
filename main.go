// Package main is the entry point for the IGVF catalog CLI.
// It queries the catalog's tRPC router and prints what comes back.
package main

import (
	"igvfcatalog/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
