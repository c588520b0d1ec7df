// internal/output/mysql.go
package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLWriter writes records to a MySQL table
type MySQLWriter struct {
	db    *sql.DB
	table string
}

// MySQLOptions configures the MySQL writer
type MySQLOptions struct {
	DSN   string
	Table string
}

// NewMySQLWriter creates a MySQL writer and verifies the connection
func NewMySQLWriter(options MySQLOptions) (*MySQLWriter, error) {
	if options.DSN == "" {
		return nil, fmt.Errorf("MySQL DSN is required")
	}
	if options.Table == "" {
		return nil, fmt.Errorf("MySQL table name is required")
	}
	if err := validateSQLIdentifier(options.Table); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", options.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	return &MySQLWriter{db: db, table: options.Table}, nil
}

// Write creates the table from the record columns if needed and
// inserts every record in one transaction
func (w *MySQLWriter) Write(records []map[string]interface{}) error {
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
	query := fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)",
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

func (w *MySQLWriter) ensureTable(columns []string) error {
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
func (w *MySQLWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}
