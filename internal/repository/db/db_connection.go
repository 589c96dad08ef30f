package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

// documents stores every collection (ERROR, USERS, DEVICES) as JSON bodies keyed
// by (collection, id).
const schemaDocuments = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL CHECK (json_valid(data)),
    PRIMARY KEY (collection, id)
);
`

const schemaExportLog = `
CREATE TABLE IF NOT EXISTS export_log (
    id TEXT PRIMARY KEY,
    occurred_at TEXT NOT NULL,
    operator_id INTEGER NOT NULL DEFAULT 0,
    chart_type TEXT NOT NULL,
    label TEXT NOT NULL,
    file_name TEXT,
    rows INTEGER NOT NULL DEFAULT 0,
    range_start TEXT,
    range_end TEXT,
    status TEXT NOT NULL,
    error TEXT
);
`

const indexExportLogOccurredAt = `
CREATE INDEX IF NOT EXISTS idx_export_log_occurred_at ON export_log (occurred_at);
`

const indexExportLogOperator = `
CREATE INDEX IF NOT EXISTS idx_export_log_operator ON export_log (operator_id, occurred_at);
`

const schemaOperators = `
CREATE TABLE IF NOT EXISTS operators (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaDocuments,
		schemaExportLog,
		indexExportLogOccurredAt,
		indexExportLogOperator,
		schemaOperators,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
