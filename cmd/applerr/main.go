// Package main provides the entry point for the applerr CLI.
//
// applerr reports warnings, errors and fatal errors for video codec test
// harnesses. Diagnostics are written to stderr and, optionally, journaled to
// a SQLite database for later inspection.
//
// Usage:
//
//	applerr error decode failed
//	applerr warning retrying
//	applerr exit fatal: out of memory
//	applerr run conformance.txt
//
// See --help for all available options.
package main

// main is the entry point for applerr.
func main() {
	Execute()
}
