// Package script parses and replays diagnostic scripts.
//
// A script is a text file with one diagnostic per line:
//
//	# codec conformance run
//	error: decode failed
//	warning: retrying
//	fatal: out of memory
//
// Severity names are warning (or warn), error, and fatal (or exit). Blank
// lines and lines starting with '#' are skipped. Replaying a script drives a
// reporter exactly as a codec test harness would, which makes scripts the
// unit of end-to-end testing for the reporter and its sinks.
//
// Design decision: Steps run strictly in order, one at a time. The reporter
// guarantees sinks observe diagnostics in call order, and a script whose
// steps ran concurrently would have no defined order to observe.
package script
