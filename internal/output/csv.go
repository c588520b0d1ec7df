// internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter writes records in CSV or TSV form with a sorted header row
type CSVWriter struct {
	filename string
	file     *os.File
	writer   *csv.Writer
}

// NewCSVWriter creates a comma-separated writer
func NewCSVWriter(filename string) (*CSVWriter, error) {
	return newDelimitedWriter(filename, ',')
}

// NewTSVWriter creates a tab-separated writer
func NewTSVWriter(filename string) (*CSVWriter, error) {
	return newDelimitedWriter(filename, '\t')
}

func newDelimitedWriter(filename string, delimiter rune) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	return &CSVWriter{
		filename: filename,
		file:     file,
		writer:   writer,
	}, nil
}

// Write writes the records, header first
func (w *CSVWriter) Write(records []map[string]interface{}) error {
	if len(records) == 0 {
		return nil
	}

	columns := collectColumns(records)
	if err := w.writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, column := range columns {
			row[i] = stringify(record[column])
		}
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.writer.Flush()
	return w.writer.Error()
}

// Close flushes and closes the file
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
