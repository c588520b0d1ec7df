// internal/output/manager.go
package output

import (
	"fmt"
	"os"
)

// Options selects and configures an output destination
type Options struct {
	Format           Format
	File             string
	ConnectionString string
	Database         string
	Table            string
}

// Manager routes record batches to the configured writer
type Manager struct {
	options Options
}

// NewManager creates an output manager
func NewManager(options Options) (*Manager, error) {
	if options.Format == "" {
		return nil, fmt.Errorf("output format is required")
	}
	if options.Table == "" {
		options.Table = "listings"
	}
	return &Manager{options: options}, nil
}

// NewWriter constructs the writer for the configured format
func (m *Manager) NewWriter() (Writer, error) {
	switch m.options.Format {
	case FormatJSON:
		return NewJSONWriter(m.options.File)
	case FormatYAML:
		return NewYAMLWriter(m.options.File)
	case FormatCSV:
		return NewCSVWriter(m.options.File)
	case FormatTSV:
		return NewTSVWriter(m.options.File)
	case FormatExcel:
		return NewExcelWriter(m.options.File, "")
	case FormatSQLite:
		return NewSQLiteWriter(SQLiteOptions{
			DatabasePath: m.options.File,
			Table:        m.options.Table,
		})
	case FormatPostgreSQL:
		return NewPostgreSQLWriter(PostgreSQLOptions{
			ConnectionString: m.options.ConnectionString,
			Table:            m.options.Table,
		})
	case FormatMySQL:
		return NewMySQLWriter(MySQLOptions{
			DSN:   m.options.ConnectionString,
			Table: m.options.Table,
		})
	case FormatMongoDB:
		return NewMongoDBWriter(MongoDBOptions{
			ConnectionString: m.options.ConnectionString,
			Database:         m.options.Database,
			Collection:       m.options.Table,
		})
	case FormatStdout:
		return NewJSONStreamWriter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", m.options.Format)
	}
}

// Write writes one batch of records through a fresh writer
func (m *Manager) Write(records []map[string]interface{}) error {
	writer, err := m.NewWriter()
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}
	defer writer.Close()

	return writer.Write(records)
}
