// internal/output/types.go

// Package output exports collected entities to files and databases.
// Export is a collaborator-layer concern: the engine returns value
// objects, and the CLI routes their flattened records through the
// writer selected by configuration.
package output

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Format identifies a supported output format
type Format string

const (
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatCSV        Format = "csv"
	FormatTSV        Format = "tsv"
	FormatExcel      Format = "excel"
	FormatSQLite     Format = "sqlite"
	FormatPostgreSQL Format = "postgresql"
	FormatMySQL      Format = "mysql"
	FormatMongoDB    Format = "mongodb"
	FormatStdout     Format = "stdout"
)

// ValidFormats returns all supported format values
func ValidFormats() []Format {
	return []Format{
		FormatJSON, FormatYAML, FormatCSV, FormatTSV, FormatExcel,
		FormatSQLite, FormatPostgreSQL, FormatMySQL, FormatMongoDB,
		FormatStdout,
	}
}

// Writer persists a batch of flattened entity records
type Writer interface {
	Write(records []map[string]interface{}) error
	Close() error
}

// sqlIdentifierRegex validates table and column names before they are
// interpolated into DDL
var sqlIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateSQLIdentifier rejects identifiers that cannot be used safely
// in generated SQL
func validateSQLIdentifier(name string) error {
	if !sqlIdentifierRegex.MatchString(name) {
		return fmt.Errorf("invalid SQL identifier: %q", name)
	}
	return nil
}

// collectColumns returns the sorted union of keys across records so
// every writer emits a consistent column order
func collectColumns(records []map[string]interface{}) []string {
	set := make(map[string]bool)
	for _, record := range records {
		for key := range record {
			set[key] = true
		}
	}

	columns := make([]string, 0, len(set))
	for key := range set {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

// stringify renders a record value for text-based formats
func stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}
