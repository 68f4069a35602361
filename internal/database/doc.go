// Package database provides SQLite-based storage for applerr.
//
// This package implements the JournalDB, which stores every diagnostic a
// reporter emits together with its run ID, sequence number and fingerprint.
// The journal backs the history and prune commands and lets a test harness
// compare diagnostics across runs.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode keeps readers (history) from blocking the writer (a running harness)
//
// JournalDB implements the reporter's Sink interface through Emit and Close,
// so it can be handed to reporter.WithSinks directly.
package database
