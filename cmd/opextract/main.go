// Package main is the entry point for the opextract CLI.
//
// opextract reads the operation definitions of a CyberChef checkout and writes a
// JSON catalog of their metadata: name, module, description, reference URL,
// input and output types, the canonical argument schema and the detection checks.
// The catalog is the input of the MCP tool layer that exposes each operation.
//
// Running opextract without a subcommand is the same as running `opextract extract`.
package main

import "os"

// version can be set during build with -ldflags
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
