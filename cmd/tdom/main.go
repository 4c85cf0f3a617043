// Command tdom renders, validates and previews markup documents with
// the tdom template engine.
//
// Configuration sources, highest priority first:
//  1. Command-line flags (--log-level, --minify, ...)
//  2. Environment variables with the TDOM_ prefix (TDOM_LOG_LEVEL, ...)
//  3. A .tdom.yml configuration file in the working directory
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
