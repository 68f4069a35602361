package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/applerr/internal/model"
)

// DBFileName is the name of the journal file inside the database directory.
const DBFileName = "applerr.db"

// timestampLayout is the layout used to store timestamps.
// The fixed-width UTC form sorts lexically in time order, so range filters
// can compare the column as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is false
// and no journal exists yet.
var ErrDatabaseNotFound = errors.New("database not found")

// JournalDB provides SQLite-based storage for diagnostics.
type JournalDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures JournalDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a JournalDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist,
// ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*JournalDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	// busy_timeout lets concurrent processes wait for the write lock.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	jdb := &JournalDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := jdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return jdb, nil
}

// Close closes the database connection.
func (jdb *JournalDB) Close() error {
	return jdb.db.Close()
}

// Path returns the path of the database file.
func (jdb *JournalDB) Path() string {
	return jdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (jdb *JournalDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS diagnostics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		severity INTEGER NOT NULL,
		message TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		UNIQUE(run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_diag_run ON diagnostics(run_id);
	CREATE INDEX IF NOT EXISTS idx_diag_fingerprint ON diagnostics(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_diag_timestamp ON diagnostics(timestamp);
	`

	_, err := jdb.db.ExecContext(context.Background(), schema)
	return err
}

// Emit stores d. It lets a JournalDB serve as a reporter sink.
func (jdb *JournalDB) Emit(ctx context.Context, d model.Diagnostic) error {
	_, err := jdb.InsertDiagnostic(ctx, &d)
	return err
}

// InsertDiagnostic stores a diagnostic and sets its ID.
// A diagnostic whose run ID and sequence number are already stored is rejected.
func (jdb *JournalDB) InsertDiagnostic(ctx context.Context, d *model.Diagnostic) (int64, error) {
	if !d.Severity.IsValid() {
		return 0, fmt.Errorf("failed to insert diagnostic: invalid severity %d", int(d.Severity))
	}

	fingerprint := d.Fingerprint
	if fingerprint == "" {
		fingerprint = model.Fingerprint(d.Severity, d.Message)
	}

	query := `
	INSERT INTO diagnostics (run_id, seq, severity, message, fingerprint, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := jdb.db.ExecContext(ctx, query,
		d.RunID,
		int64(d.Seq), //nolint:gosec // sequence numbers stay far below MaxInt64
		int(d.Severity),
		d.Message,
		fingerprint,
		formatTimestamp(d.Time),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert diagnostic: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read diagnostic id: %w", err)
	}
	d.ID = id
	d.Fingerprint = fingerprint
	return id, nil
}

// Filter narrows journal queries. The zero value matches everything.
type Filter struct {
	// RunID limits results to one run.
	RunID string

	// MinSeverity limits results to this severity and above.
	MinSeverity model.Severity

	// Since limits results to diagnostics at or after this time.
	Since time.Time

	// Limit caps the number of results. Zero means no cap.
	Limit int
}

// where builds the WHERE clause and arguments for f.
func (f Filter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.RunID != "" {
		clauses = append(clauses, "run_id = ?")
		args = append(args, f.RunID)
	}
	if f.MinSeverity.IsValid() {
		clauses = append(clauses, "severity >= ?")
		args = append(args, int(f.MinSeverity))
	}
	if !f.Since.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, formatTimestamp(f.Since))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// ListDiagnostics returns diagnostics matching f in journal order.
func (jdb *JournalDB) ListDiagnostics(ctx context.Context, f Filter) ([]model.Diagnostic, error) {
	where, args := f.where()
	query := `
	SELECT id, run_id, seq, severity, message, fingerprint, timestamp
	FROM diagnostics
	` + where + `
	ORDER BY id`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := jdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []model.Diagnostic
	for rows.Next() {
		var (
			d         model.Diagnostic
			seq       int64
			severity  int
			timestamp string
		)
		if err := rows.Scan(&d.ID, &d.RunID, &seq, &severity, &d.Message, &d.Fingerprint, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		d.Seq = uint64(seq) //nolint:gosec // stored from a uint64
		d.Severity = model.Severity(severity)
		d.Time = parseTimestamp(timestamp)
		diags = append(diags, d)
	}

	return diags, rows.Err()
}

// GroupDiagnostics aggregates diagnostics matching f by fingerprint,
// most frequent first. The Limit of f caps the number of groups.
func (jdb *JournalDB) GroupDiagnostics(ctx context.Context, f Filter) ([]model.Group, error) {
	where, args := f.where()
	query := `
	SELECT fingerprint, MAX(severity), MIN(message), COUNT(*), MIN(timestamp), MAX(timestamp)
	FROM diagnostics
	` + where + `
	GROUP BY fingerprint
	ORDER BY COUNT(*) DESC, MIN(id)`
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := jdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group diagnostics: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var (
			g               model.Group
			severity        int
			first, lastSeen string
		)
		if err := rows.Scan(&g.Fingerprint, &severity, &g.Message, &g.Count, &first, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		g.Severity = model.Severity(severity)
		g.FirstSeen = parseTimestamp(first)
		g.LastSeen = parseTimestamp(lastSeen)
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// RunInfo summarizes one reporter run stored in the journal.
type RunInfo struct {
	// RunID identifies the run.
	RunID string

	// Summary counts the run's diagnostics by severity.
	Summary model.Summary

	// FirstSeen and LastSeen bound the run's diagnostics in time.
	FirstSeen time.Time
	LastSeen  time.Time
}

// ListRuns returns every run in the journal, most recent first.
func (jdb *JournalDB) ListRuns(ctx context.Context) ([]RunInfo, error) {
	query := `
	SELECT run_id,
		SUM(CASE WHEN severity = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN severity = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN severity = ? THEN 1 ELSE 0 END),
		MIN(timestamp), MAX(timestamp)
	FROM diagnostics
	GROUP BY run_id
	ORDER BY MAX(timestamp) DESC, run_id
	`

	rows, err := jdb.db.QueryContext(ctx, query,
		int(model.SeverityWarning),
		int(model.SeverityError),
		int(model.SeverityFatal),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			run             RunInfo
			first, lastSeen string
		)
		if err := rows.Scan(&run.RunID,
			&run.Summary.WarningCount,
			&run.Summary.ErrorCount,
			&run.Summary.FatalCount,
			&first, &lastSeen,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.FirstSeen = parseTimestamp(first)
		run.LastSeen = parseTimestamp(lastSeen)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Prune deletes diagnostics older than olderThan relative to now and
// returns how many were deleted.
func (jdb *JournalDB) Prune(ctx context.Context, olderThan time.Duration, now time.Time) (int64, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("invalid prune age %v: must be non-negative", olderThan)
	}

	cutoff := formatTimestamp(now.Add(-olderThan))
	result, err := jdb.db.ExecContext(ctx, "DELETE FROM diagnostics WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune diagnostics: %w", err)
	}
	return result.RowsAffected()
}

// formatTimestamp converts t to the stored form.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats accepted when reading.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
