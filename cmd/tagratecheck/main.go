// Package main provides the entry point for the tagratecheck CLI tool.
package main

import (
	"github.com/dsmi313/tagratecheck/cmd/tagratecheck/cmd"
)

// Version information populated by the build system.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
