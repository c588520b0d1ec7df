// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteWriter writes records to a local SQLite database
type SQLiteWriter struct {
	db    *sql.DB
	table string
}

// SQLiteOptions configures the SQLite writer
type SQLiteOptions struct {
	DatabasePath string
	Table        string
}

// NewSQLiteWriter creates a SQLite writer, creating the database file
// and its directory as needed
func NewSQLiteWriter(options SQLiteOptions) (*SQLiteWriter, error) {
	if options.DatabasePath == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}
	if options.Table == "" {
		return nil, fmt.Errorf("SQLite table name is required")
	}
	if err := validateSQLIdentifier(options.Table); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(options.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", options.DatabasePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &SQLiteWriter{db: db, table: options.Table}, nil
}

// Write creates the table from the record columns if needed and
// inserts every record in one transaction
func (w *SQLiteWriter) Write(records []map[string]interface{}) error {
	if len(records) == 0 {
		return nil
	}

	columns := collectColumns(records)
	for _, column := range columns {
		if err := validateSQLIdentifier(column); err != nil {
			return err
		}
	}

	if err := w.ensureTable(columns); err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
		w.table, strings.Join(columns, ", "), placeholders)

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(columns))
	for _, record := range records {
		for i, column := range columns {
			args[i] = stringify(record[column])
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return tx.Commit()
}

func (w *SQLiteWriter) ensureTable(columns []string) error {
	defs := make([]string, len(columns))
	for i, column := range columns {
		defs[i] = column + " TEXT"
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", w.table, strings.Join(defs, ", "))
	if _, err := w.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

// Close closes the database connection
func (w *SQLiteWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}
