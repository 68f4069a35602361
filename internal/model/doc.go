// Package model defines the core data structures used throughout applerr.
//
// This package contains the following main types:
//   - Severity: The level of a reported condition (warning, error, fatal)
//   - Diagnostic: A single reported condition with its message and metadata
//   - Summary: Per-severity counts kept by a reporter or computed from history
//   - Group: Repeated diagnostics aggregated by fingerprint
//   - HistoryReport: The input to the history report writers
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The reporter, database and report packages all need these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
