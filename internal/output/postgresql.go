// internal/output/postgresql.go
package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgreSQLWriter writes records to a PostgreSQL table
type PostgreSQLWriter struct {
	db    *sql.DB
	table string
}

// PostgreSQLOptions configures the PostgreSQL writer
type PostgreSQLOptions struct {
	ConnectionString string
	Table            string
}

// NewPostgreSQLWriter creates a PostgreSQL writer and verifies the
// connection
func NewPostgreSQLWriter(options PostgreSQLOptions) (*PostgreSQLWriter, error) {
	if options.ConnectionString == "" {
		return nil, fmt.Errorf("PostgreSQL connection string is required")
	}
	if options.Table == "" {
		return nil, fmt.Errorf("PostgreSQL table name is required")
	}
	if err := validateSQLIdentifier(options.Table); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", options.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return &PostgreSQLWriter{db: db, table: options.Table}, nil
}

// Write creates the table from the record columns if needed and
// inserts every record in one transaction
func (w *PostgreSQLWriter) Write(records []map[string]interface{}) error {
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

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		w.table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

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

func (w *PostgreSQLWriter) ensureTable(columns []string) error {
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
func (w *PostgreSQLWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}
